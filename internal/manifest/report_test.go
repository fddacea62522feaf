package manifest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteReportPropagatesWriteErrors(t *testing.T) {
	t.Parallel()

	err := WriteReport(failingWriter{}, Report{})
	require.Error(t, err)
}

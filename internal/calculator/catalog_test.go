package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardCatalogOrder(t *testing.T) {
	t.Parallel()

	catalog := StandardCatalog()
	require.NoError(t, catalog.Validate())

	ids := make([]string, 0, catalog.Len())
	for _, c := range catalog.Containers() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"container-20ft", "container-40ft", "truck-small", "truck-medium", "truck-large"}, ids)

	last, ok := catalog.Last()
	require.True(t, ok)
	assert.Equal(t, "truck-large", last.ID)
}

func TestStandardCatalogIsIsolated(t *testing.T) {
	t.Parallel()

	containers := StandardCatalog().Containers()
	containers[0].MaxWeight = 1

	again, ok := StandardCatalog().Find("container-20ft")
	require.True(t, ok)
	assert.Equal(t, 28230.0, again.MaxWeight)
}

func TestCatalogFind(t *testing.T) {
	t.Parallel()

	_, ok := StandardCatalog().Find("spaceship")
	assert.False(t, ok)

	_, ok = Catalog{}.Last()
	assert.False(t, ok)
}

func TestNewCatalogRejectsInvalidEntries(t *testing.T) {
	t.Parallel()

	valid := Container{ID: "a", Kind: KindTruck, Length: 1, Width: 1, Height: 1, MaxWeight: 1}

	cases := map[string][]Container{
		"Empty":         nil,
		"MissingID":     {{Kind: KindTruck, Length: 1, Width: 1, Height: 1, MaxWeight: 1}},
		"DuplicateID":   {valid, valid},
		"UnknownKind":   {{ID: "a", Kind: "barge", Length: 1, Width: 1, Height: 1, MaxWeight: 1}},
		"ZeroDimension": {{ID: "a", Kind: KindTruck, Length: 0, Width: 1, Height: 1, MaxWeight: 1}},
		"ZeroMaxWeight": {{ID: "a", Kind: KindTruck, Length: 1, Width: 1, Height: 1}},
	}
	for name, containers := range cases {
		containers := containers
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := NewCatalog(containers)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}

	catalog, err := NewCatalog([]Container{valid})
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Len())
}

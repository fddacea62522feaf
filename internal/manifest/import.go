package manifest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/eugenenazirov/loading-assistant/internal/calculator"
)

var (
	// ErrNoValidPackages is returned when an import contains no usable row.
	ErrNoValidPackages = errors.New("no valid packages found in file")
	// ErrMissingColumns is returned when the header lacks a required column.
	ErrMissingColumns = errors.New("missing required columns")
)

type column int

const (
	colType column = iota
	colLength
	colWidth
	colHeight
	colWeight
	colQuantity
)

var columnNames = map[column]string{
	colType:     "type",
	colLength:   "length",
	colWidth:    "width",
	colHeight:   "height",
	colWeight:   "weight",
	colQuantity: "quantity",
}

// headerAliases maps a normalised header cell to its column. Units in
// parentheses are stripped before lookup, so "Poids (kg)" matches "poids".
var headerAliases = map[string]column{
	"type":          colType,
	"package type":  colType,
	"type de colis": colType,
	"length":        colLength,
	"longueur":      colLength,
	"width":         colWidth,
	"largeur":       colWidth,
	"height":        colHeight,
	"hauteur":       colHeight,
	"weight":        colWeight,
	"poids":         colWeight,
	"quantity":      colQuantity,
	"qty":           colQuantity,
	"quantité":      colQuantity,
	"quantite":      colQuantity,
}

// RowError describes a skipped line of an import file.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportResult holds the packages read from a file and the rows that were skipped.
type ImportResult struct {
	Packages []calculator.Package `json:"packages"`
	Skipped  []RowError           `json:"skipped,omitempty"`
}

// ImportOption configures ParsePackagesCSV.
type ImportOption func(*importConfig)

type importConfig struct {
	newID func() string
}

// WithIDGenerator overrides how package ids are assigned, primarily for tests.
func WithIDGenerator(newID func() string) ImportOption {
	return func(cfg *importConfig) {
		cfg.newID = newID
	}
}

// ParsePackagesCSV reads a package list whose first row is a header. Comma and
// semicolon separated files are accepted. Rows without a type or with
// non-positive dimensions or weight are skipped; a missing or non-positive
// quantity becomes 1.
func ParsePackagesCSV(r io.Reader, opts ...ImportOption) (ImportResult, error) {
	cfg := importConfig{newID: uuid.NewString}
	for _, opt := range opts {
		opt(&cfg)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read import: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ImportResult{}, ErrNoValidPackages
		}
		return ImportResult{}, fmt.Errorf("read header: %w", err)
	}

	index, err := mapHeader(header)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Packages: []calculator.Package{}}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.Skipped = append(result.Skipped, RowError{Line: parseErr.StartLine, Reason: parseErr.Err.Error()})
				continue
			}
			return ImportResult{}, fmt.Errorf("read row: %w", err)
		}
		if isBlank(record) {
			continue
		}
		line, _ := reader.FieldPos(0)

		pkg, reason := parseRow(record, index)
		if reason != "" {
			result.Skipped = append(result.Skipped, RowError{Line: line, Reason: reason})
			continue
		}
		pkg.ID = cfg.newID()
		result.Packages = append(result.Packages, pkg)
	}

	if len(result.Packages) == 0 {
		return result, ErrNoValidPackages
	}
	return result, nil
}

func sniffDelimiter(data []byte) rune {
	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}
	if bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		return ';'
	}
	return ','
}

func normalizeHeader(cell string) string {
	cell = strings.ToLower(strings.TrimSpace(cell))
	if i := strings.Index(cell, "("); i >= 0 {
		cell = cell[:i]
	}
	return strings.Join(strings.Fields(cell), " ")
}

func mapHeader(header []string) (map[column]int, error) {
	index := make(map[column]int, len(columnNames))
	for i, cell := range header {
		col, ok := headerAliases[normalizeHeader(cell)]
		if !ok {
			continue
		}
		if _, seen := index[col]; !seen {
			index[col] = i
		}
	}

	var missing []string
	for _, col := range []column{colType, colLength, colWidth, colHeight, colWeight} {
		if _, ok := index[col]; !ok {
			missing = append(missing, columnNames[col])
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return index, nil
}

func parseRow(record []string, index map[column]int) (calculator.Package, string) {
	cell := func(col column) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	pkg := calculator.Package{Type: cell(colType)}
	if pkg.Type == "" {
		return calculator.Package{}, "type is empty"
	}

	dims := []struct {
		col  column
		dest *float64
	}{
		{colLength, &pkg.Length},
		{colWidth, &pkg.Width},
		{colHeight, &pkg.Height},
		{colWeight, &pkg.Weight},
	}
	for _, d := range dims {
		value, ok := parsePositive(cell(d.col))
		if !ok {
			return calculator.Package{}, fmt.Sprintf("%s must be a positive number", columnNames[d.col])
		}
		*d.dest = value
	}

	pkg.Quantity = parseQuantity(cell(colQuantity))
	return pkg, ""
}

// parsePositive accepts both "2.5" and "2,5".
func parsePositive(raw string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0, false
	}
	return value, true
}

func parseQuantity(raw string) int {
	value, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil || math.IsNaN(value) || value < 1 || value > math.MaxInt32 {
		return 1
	}
	return int(value)
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

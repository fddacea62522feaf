package manifest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/eugenenazirov/loading-assistant/internal/calculator"
)

// csvHeader is both the export header and the canonical import header.
var csvHeader = []string{"Type", "Length (cm)", "Width (cm)", "Height (cm)", "Weight (kg)", "Quantity"}

var templatePackages = []calculator.Package{
	{Type: "Carton", Length: 30, Width: 20, Height: 15, Weight: 2.5, Quantity: 1},
	{Type: "Pallet", Length: 120, Width: 80, Height: 100, Weight: 25, Quantity: 2},
}

// WritePackagesCSV writes packages in the format accepted by ParsePackagesCSV.
func WritePackagesCSV(w io.Writer, packages []calculator.Package) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, pkg := range packages {
		if err := cw.Write(packageRecord(pkg)); err != nil {
			return fmt.Errorf("write package %q: %w", pkg.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTemplateCSV writes an import template with two example rows.
func WriteTemplateCSV(w io.Writer) error {
	return WritePackagesCSV(w, templatePackages)
}

func packageRecord(pkg calculator.Package) []string {
	return []string{
		pkg.Type,
		formatNumber(pkg.Length),
		formatNumber(pkg.Width),
		formatNumber(pkg.Height),
		formatNumber(pkg.Weight),
		strconv.Itoa(pkg.Quantity),
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

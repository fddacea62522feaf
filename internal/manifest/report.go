package manifest

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/eugenenazirov/loading-assistant/internal/calculator"
)

const reportDateLayout = "2006-01-02"

// Report is the data behind a plain text loading plan.
type Report struct {
	GeneratedAt time.Time
	Container   calculator.Container
	Packages    []calculator.Package
	Stats       calculator.LoadingStats
}

// WriteReport renders r as plain text. Utilization figures are printed from the
// already rounded stats so they match what the API reports.
func WriteReport(w io.Writer, r Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "LOADING PLAN")
	fmt.Fprintln(bw, "=====================================")
	fmt.Fprintf(bw, "Date: %s\n", r.GeneratedAt.Format(reportDateLayout))
	fmt.Fprintf(bw, "Container: %s (%s)\n", r.Container.Name, r.Container.ID)
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "SUMMARY")
	fmt.Fprintln(bw, "-------")
	fmt.Fprintf(bw, "Packages: %d\n", len(r.Packages))
	fmt.Fprintf(bw, "Total weight: %.2f kg\n", r.Stats.TotalWeight)
	fmt.Fprintf(bw, "Total volume: %.2f m³\n", r.Stats.TotalVolume)
	fmt.Fprintf(bw, "Volume utilization: %.2f%%\n", r.Stats.VolumeUtilization)
	fmt.Fprintf(bw, "Weight utilization: %.2f%%\n", r.Stats.WeightUtilization)
	fmt.Fprintf(bw, "Remaining volume: %.2f m³\n", r.Stats.RemainingVolume)
	fmt.Fprintf(bw, "Remaining weight: %.2f kg\n", r.Stats.RemainingWeight)
	fmt.Fprintf(bw, "Status: %s\n", r.Stats.Status())
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "PACKAGE DETAILS")
	fmt.Fprintln(bw, "---------------")
	for i, pkg := range r.Packages {
		fmt.Fprintf(bw, "%d. %s - %s×%s×%scm - %skg (×%d)\n",
			i+1, pkg.Type,
			formatNumber(pkg.Length), formatNumber(pkg.Width), formatNumber(pkg.Height),
			formatNumber(pkg.Weight), pkg.Quantity,
		)
	}
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Generated by Loading Assistant")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ReportFilename returns the download name for a report generated at t.
func ReportFilename(t time.Time) string {
	return fmt.Sprintf("loading-plan-%s.txt", t.Format(reportDateLayout))
}

// PackagesFilename returns the download name for a package export generated at t.
func PackagesFilename(t time.Time) string {
	return fmt.Sprintf("packages-%s.csv", t.Format(reportDateLayout))
}

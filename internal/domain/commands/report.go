package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/rios0rios0/pypiup/internal/domain/entities"
)

const reportWidth = 60

var (
	okGlyph   = color.New(color.FgGreen).Sprint("✓")
	failGlyph = color.New(color.FgRed).Sprint("✗")
)

// PrintSummary writes the deterministic update report: header, counters,
// success rate, then one block per outcome in the order they were produced.
func PrintSummary(out io.Writer, summary *entities.UpdateSummary) {
	banner := strings.Repeat("=", reportWidth)

	fmt.Fprintln(out)
	fmt.Fprintln(out, banner)
	fmt.Fprintln(out, "UPDATE SUMMARY")
	fmt.Fprintln(out, banner)
	fmt.Fprintf(out, "Total packages checked: %d\n", summary.Total)
	fmt.Fprintf(out, "Packages updated: %d\n", summary.Updated)
	fmt.Fprintf(out, "Packages failed: %d\n", summary.Failed)
	fmt.Fprintf(out, "Packages skipped: %d\n", summary.Skipped)
	fmt.Fprintf(out, "Success rate: %.1f%%\n", summary.SuccessRate())
	fmt.Fprintln(out)

	if len(summary.Results) > 0 {
		fmt.Fprintln(out, "DETAILED RESULTS:")
		fmt.Fprintln(out, strings.Repeat("-", reportWidth))

		for _, result := range summary.Results {
			glyph := okGlyph
			if !result.Success {
				glyph = failGlyph
			}
			fmt.Fprintf(out, "%s %s: %s → %s\n",
				glyph, result.PackageName, result.OldVersion, result.NewVersion)
			fmt.Fprintf(out, "   File: %s\n", result.FilePath)
			if result.ErrorMessage != "" {
				fmt.Fprintf(out, "   Error: %s\n", result.ErrorMessage)
			}
			fmt.Fprintln(out)
		}
	}

	fmt.Fprintln(out, banner)
}

// PrintCheckReport writes the read-only scan report: per-file update
// listings followed by the run totals.
func PrintCheckReport(out io.Writer, report *CheckReport) {
	totalUpdates := 0
	filesChecked := 0

	for _, filePath := range report.Files {
		packages := report.Packages[filePath]
		if len(packages) == 0 {
			// Files carrying only includes or comments are not reported.
			continue
		}
		filesChecked++

		var updates []entities.PackageInfo
		for _, pkg := range packages {
			if pkg.HasUpdate() {
				updates = append(updates, pkg)
			}
		}

		if len(updates) == 0 {
			fmt.Fprintf(out, "\nNo updates available in %s\n", filePath)
			continue
		}

		fmt.Fprintf(out, "\nUpdates available in %s:\n", filePath)
		for _, pkg := range updates {
			fmt.Fprintf(out, "  %s: %s → %s\n", pkg.Name, pkg.CurrentVersion, pkg.LatestVersion)
		}
		totalUpdates += len(updates)
	}

	switch {
	case filesChecked == 0:
		fmt.Fprintln(out, "\nNo packages found to check!")
	case totalUpdates == 0:
		fmt.Fprintln(out, "\nAll packages are up to date!")
	default:
		fmt.Fprintf(out, "\nTotal packages with updates available: %d\n", totalUpdates)
	}
}

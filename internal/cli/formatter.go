package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/tamunaa/file-system-analyzer/internal/analyzer"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintJSON outputs the report in JSON format.
func PrintJSON(report *analyzer.Report, writer io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs the report in human-readable table format.
func PrintTable(
	report *analyzer.Report,
	size analyzer.SizeResult,
	perm analyzer.PermissionResult,
	categories analyzer.CategoryResult,
	writer io.Writer,
) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	// Oversized files
	fmt.Fprintf(w, "\nFiles above %s:\t\t\n", humanize.IBytes(uint64(size.ThresholdBytes))) //nolint:gosec // Threshold is positive
	if len(size.Oversized) == 0 {
		fmt.Fprintln(w, "  (none)")
	}

	for i, f := range size.Oversized {
		pct := 0.0
		if size.TotalBytes > 0 {
			pct = 100.0 * float64(f.Size) / float64(size.TotalBytes)
		}

		fmt.Fprintf(w, "  %d) '%s'\t%s (%.1f%%)\n",
			i+1, f.Path, humanize.IBytes(uint64(f.Size)), pct) //nolint:gosec // Size is always positive
	}

	// Writable paths
	fmt.Fprintln(w, "\nWritable paths:\t\t")
	if len(perm.Writable) == 0 {
		fmt.Fprintln(w, "  (none)")
	}

	for _, path := range perm.Writable {
		fmt.Fprintf(w, "  %s\n", path)
	}

	// Category counts, largest first
	fmt.Fprintln(w, "\nCategories:\t\t")
	labels := make([]string, 0, len(categories.Counts))

	for label := range categories.Counts {
		labels = append(labels, label)
	}

	sort.Slice(labels, func(i, j int) bool {
		if categories.Counts[labels[i]] != categories.Counts[labels[j]] {
			return categories.Counts[labels[i]] > categories.Counts[labels[j]]
		}

		return labels[i] < labels[j]
	})

	for _, label := range labels {
		fmt.Fprintf(w, "  %s:\t%d files\n", label, categories.Counts[label])
	}

	// Skipped entries
	if len(report.Errors) > 0 {
		fmt.Fprintln(w, "\nSkipped entries:\t\t")

		for _, entryErr := range report.Errors {
			fmt.Fprintf(w, "  %s:\t%s\n", entryErr.Path, entryErr.Reason)
		}
	}

	// Stats summary
	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Files scanned:\t%d\n", size.FilesScanned)
	fmt.Fprintf(w, "Directories:\t%d\n", report.DirsVisited)
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n",
		humanize.IBytes(uint64(report.TotalBytes)), report.TotalBytes) //nolint:gosec // Bytes is always positive

	fmt.Fprintf(w, "\nElapsed:\t%v\n", report.Elapsed)

	return w.Flush()
}

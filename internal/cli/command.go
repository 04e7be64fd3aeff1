package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// DefaultExcludes contains the default exclusion patterns.
//
//nolint:gochecknoglobals // Config constant
var DefaultExcludes = []string{`.*\.git/.*`, `.*node_modules/.*`}

// DefaultThreshold is the default oversized-file threshold.
const DefaultThreshold = "100MB"

// flags holds the raw command-line flag values.
type flags struct {
	threshold  string
	categories string
	excludes   []string
	depth      int
	output     string
	debug      bool
}

// New creates the root command with the given version.
func New(version string) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "fsanalyzer [path]",
		Short: "Analyze a directory tree in a single pass",
		Long: heredoc.Doc(`
			fsanalyzer walks a directory tree once and applies a set of independent
			analyses to every file and directory it encounters:

			  - files larger than a size threshold
			  - files and directories with any write permission bit set
			  - file counts per category (by extension, MIME guess as fallback)

			Unreadable entries never abort the walk: they are skipped, and reported
			alongside the results.

			Defaults to the current directory if no path is given.
		`),
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			allowedOutputs := []string{"table", "json"}
			if !slices.Contains(allowedOutputs, f.output) {
				return fmt.Errorf("invalid output format %q: must be one of %v", f.output, allowedOutputs)
			}

			if f.depth < 0 {
				return errors.New("depth cannot be negative")
			}

			threshold, err := humanize.ParseBytes(f.threshold)
			if err != nil {
				return fmt.Errorf("invalid threshold: %w", err)
			}

			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			return run(config{
				root:           root,
				thresholdBytes: int64(threshold), //nolint:gosec // Size conversion from humanize is safe
				categoriesFile: f.categories,
				excludes:       f.excludes,
				depth:          f.depth,
				output:         f.output,
				debug:          f.debug,
			})
		},
	}

	cmd.Flags().StringVarP(&f.threshold, "threshold", "t", DefaultThreshold,
		"Size above which a file counts as oversized (e.g., 1KB, 50MB)")
	cmd.Flags().StringVarP(&f.categories, "categories", "c", "",
		"YAML file overriding the extension->category table")
	cmd.Flags().StringSliceVarP(&f.excludes, "exclude", "e", DefaultExcludes, "Regex patterns to exclude")
	cmd.Flags().IntVarP(&f.depth, "depth", "d", 0, "Maximum traversal depth (0=unlimited)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "table", "Output format: json or table")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Enable debug output")
	cmd.Flags().SortFlags = false

	return cmd
}

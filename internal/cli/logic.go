package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/tamunaa/file-system-analyzer/internal/analyzer"
	"github.com/tamunaa/file-system-analyzer/internal/classify"
)

// config carries the validated command-line configuration into the run.
type config struct {
	root           string
	thresholdBytes int64
	categoriesFile string
	excludes       []string
	depth          int
	output         string
	debug          bool
}

func run(cfg config) error {
	var overrides map[string]string

	if cfg.categoriesFile != "" {
		var err error

		overrides, err = classify.LoadOverrides(cfg.categoriesFile)
		if err != nil {
			return err
		}
	}

	classifier, err := classify.New(overrides)
	if err != nil {
		return err
	}

	sizeVisitor := analyzer.NewFileSizeVisitor(cfg.thresholdBytes)
	permVisitor := analyzer.NewPermissionVisitor()
	categoryVisitor := analyzer.NewFileCategoryVisitor()

	a, err := analyzer.New(analyzer.Options{
		Root:        cfg.root,
		Excludes:    cfg.excludes,
		MaxDepth:    cfg.depth,
		Categorizer: classifier,
		Debug:       cfg.debug,
	}, sizeVisitor, permVisitor, categoryVisitor)
	if err != nil {
		return err
	}

	enableProgress := strings.ToLower(cfg.output) != "json" &&
		!cfg.debug &&
		isatty.IsTerminal(os.Stderr.Fd())

	// Simple progress callback that prints directly to stderr
	var progress func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		progress = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s",
				files, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	report, err := a.Run(context.Background(), progress)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	switch strings.ToLower(cfg.output) {
	case "json":
		return PrintJSON(report, os.Stdout)
	case "table":
		return PrintTable(report, sizeVisitor.Report(), permVisitor.Report(), categoryVisitor.Report(), os.Stdout)
	default:
		return fmt.Errorf("unknown output format: %s", cfg.output)
	}
}

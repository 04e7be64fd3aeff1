package analyzer

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"time"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// Options configures an analysis run.
type Options struct {
	// Root is the directory to analyze.
	Root string
	// Excludes contains regex patterns to exclude.
	Excludes []string
	// MaxDepth is the maximum traversal depth (0 = unlimited).
	MaxDepth int
	// Categorizer resolves file categories. May be nil.
	Categorizer Categorizer
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug enables debug output.
	Debug bool
	// FS overrides the file system. Defaults to the OS file system.
	FS FileSystem
}

// Report is the outcome of one completed walk: every registered visitor's
// finalized result plus the ordered log of entries that could not be read.
type Report struct {
	// Root is the analyzed directory.
	Root string `json:"root"`
	// Results maps visitor name to its finalized result.
	Results map[string]any `json:"results"`
	// Errors lists recovered per-entry failures in encounter order.
	Errors []EntryError `json:"errors"`
	// FilesVisited is the number of files dispatched to visitors.
	FilesVisited int64 `json:"files_visited"`
	// DirsVisited is the number of directories dispatched to visitors.
	DirsVisited int64 `json:"dirs_visited"`
	// TotalBytes is the cumulative size of visited files.
	TotalBytes int64 `json:"total_bytes"`
	// Elapsed is the total time taken for the walk.
	Elapsed time.Duration `json:"elapsed"`
}

// Analyzer owns one walk: it validates the root up front, drives the
// traversal source, and dispatches every element to each registered
// visitor in registration order.
type Analyzer struct {
	opts     Options
	fsys     FileSystem
	excludes []*regexp.Regexp
	visitors []Visitor
}

// New creates an Analyzer. It fails before any traversal when the root
// does not resolve to a directory, an exclude pattern does not compile,
// or two visitors share a name.
func New(opts Options, visitors ...Visitor) (*Analyzer, error) {
	if opts.Root == "" {
		opts.Root = "."
	}

	opts.Root = filepath.Clean(opts.Root)

	fsys := opts.FS
	if fsys == nil {
		fsys = osFS{}
	}

	if info, err := fsys.Stat(opts.Root); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opts.Root, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("path %q: %w", opts.Root, ErrNotDirectory)
	}

	excludes := make([]*regexp.Regexp, 0, len(opts.Excludes))

	for _, p := range opts.Excludes {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling exclusion pattern %q: %w", p, err)
		}

		excludes = append(excludes, re)
	}

	seen := make(map[string]struct{}, len(visitors))

	for _, v := range visitors {
		if _, ok := seen[v.Name()]; ok {
			return nil, fmt.Errorf("visitor %q: %w", v.Name(), ErrDuplicateVisitor)
		}

		seen[v.Name()] = struct{}{}
	}

	return &Analyzer{
		opts:     opts,
		fsys:     fsys,
		excludes: excludes,
		visitors: visitors,
	}, nil
}

// Run performs the walk and returns the aggregated report. Per-entry
// failures never abort the walk; they are collected on the report. The
// only mid-walk failure is cancellation via ctx, checked between pulls.
//
// The walk is strictly single-threaded: visitors and the progress hook
// are invoked from the calling goroutine, so visitor state needs no
// locking. A visitor instance must not be reused across runs.
func (a *Analyzer) Run(ctx context.Context, progress func(files, bytes int64)) (*Report, error) {
	interval := a.opts.ProgressInterval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	src := NewSource(a.opts.Root, SourceConfig{
		FS:          a.fsys,
		Categorizer: a.opts.Categorizer,
		Excludes:    a.excludes,
		MaxDepth:    a.opts.MaxDepth,
		Debug:       a.opts.Debug,
	})

	report := &Report{Root: a.opts.Root}

	start := time.Now()
	lastProgress := start

	for src.Step() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("walk cancelled: %w", ctx.Err())
		default:
		}

		if entryErr := src.Err(); entryErr != nil {
			report.Errors = append(report.Errors, *entryErr)

			continue
		}

		el := src.Element()

		switch el := el.(type) {
		case *File:
			report.FilesVisited++
			report.TotalBytes += el.Size()
		case *Directory:
			report.DirsVisited++
		}

		for _, v := range a.visitors {
			el.Accept(v)
		}

		if progress != nil && time.Since(lastProgress) >= interval {
			progress(report.FilesVisited, report.TotalBytes)
			lastProgress = time.Now()
		}
	}

	report.Elapsed = time.Since(start)
	report.Results = make(map[string]any, len(a.visitors))

	for _, v := range a.visitors {
		report.Results[v.Name()] = v.Result()
	}

	return report, nil
}

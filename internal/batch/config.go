// Package batch discovers PAGE XML files and runs document operations
// over them with a worker pool, plus the line-table and fulltext export
// helpers shared by the commands.
package batch

import (
	"time"

	"github.com/pagemend/pagemend/internal/layout"
)

// Config holds all settings for a batch run.
type Config struct {
	// Parallel processing settings
	Workers         int
	ContinueOnError bool

	// File discovery settings
	Recursive bool

	// Output settings
	OutputDir string
	DryRun    bool
}

// FileResult holds the outcome of processing a single file.
type FileResult struct {
	Path       string
	OutputPath string
	Totals     layout.Totals
	Err        error
}

// Result holds the outcome of a batch run.
type Result struct {
	Files       []FileResult
	Duration    time.Duration
	WorkerCount int
}

// Totals aggregates the element counts over all successfully processed files.
func (r *Result) Totals() layout.Totals {
	var t layout.Totals
	for _, f := range r.Files {
		if f.Err == nil {
			t.Add(f.Totals)
		}
	}
	return t
}

// FailedCount returns the number of files that failed to process.
func (r *Result) FailedCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

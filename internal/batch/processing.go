package batch

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pagemend/pagemend/internal/layout"
	"github.com/pagemend/pagemend/internal/pagexml"
)

// Operation mutates a single document. Implementations must not retain the
// document past the call.
type Operation func(doc *layout.Document) error

// ErrNoFiles is returned when discovery yields nothing to process.
var ErrNoFiles = errors.New("no PAGE XML files found")

// ProcessPaths discovers PAGE XML files under the given arguments and runs
// the operation on each of them.
func ProcessPaths(args []string, op Operation, cfg *Config, log *slog.Logger) (*Result, error) {
	files, err := CollectXMLFiles(args, cfg.Recursive)
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return ProcessFiles(files, op, cfg, log)
}

// ProcessFiles runs the operation on every file using a fixed worker pool.
// Results keep the input order. Unless ContinueOnError is set, the first
// failure is returned after all in-flight workers drain.
func ProcessFiles(files []string, op Operation, cfg *Config, log *slog.Logger) (*Result, error) {
	if log == nil {
		log = slog.Default()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	start := time.Now()
	results := make([]FileResult, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = processFile(files[i], op, cfg, log)
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	res := &Result{
		Files:       results,
		Duration:    time.Since(start),
		WorkerCount: workers,
	}

	if !cfg.ContinueOnError {
		for _, f := range res.Files {
			if f.Err != nil {
				return res, fmt.Errorf("processing %s: %w", f.Path, f.Err)
			}
		}
	}
	return res, nil
}

// processFile loads one document, applies the operation, and writes the
// result back unless the run is dry.
func processFile(path string, op Operation, cfg *Config, log *slog.Logger) FileResult {
	result := FileResult{Path: path}
	log.Info("processing file", "file", path)

	file, err := pagexml.Load(path)
	if err != nil {
		result.Err = fmt.Errorf("loading %s: %w", path, err)
		log.Error("failed to load file", "file", path, "error", err)
		return result
	}

	doc, err := pagexml.BuildDocument(file, log)
	if err != nil {
		result.Err = fmt.Errorf("reading %s: %w", path, err)
		log.Error("failed to build document", "file", path, "error", err)
		return result
	}

	if op != nil {
		if err := op(doc); err != nil {
			result.Err = fmt.Errorf("processing %s: %w", path, err)
			log.Error("operation failed", "file", path, "error", err)
			return result
		}
	}

	result.Totals = doc.CountAll()

	if cfg.DryRun || op == nil {
		return result
	}

	pagexml.ApplyDocument(doc, file)
	out := OutputPathFor(path, cfg.OutputDir)
	if err := pagexml.Save(file, out); err != nil {
		result.Err = fmt.Errorf("writing %s: %w", out, err)
		log.Error("failed to write file", "file", out, "error", err)
		return result
	}
	result.OutputPath = out
	log.Info("wrote modified file", "file", out)
	return result
}

// Package fileproc provides concurrent file processing utilities.
package fileproc

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/scrylabs/scry/pkg/syntax"
)

// ProcessingError reports a single file that failed to process.
type ProcessingError struct {
	Path string
	Err  error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// ProcessingErrors collects file processing errors from concurrent workers.
type ProcessingErrors struct {
	Errors []ProcessingError
	mu     sync.Mutex
}

// Add appends an error to the collection. Safe for concurrent use.
func (e *ProcessingErrors) Add(path string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, ProcessingError{Path: path, Err: err})
	e.mu.Unlock()
}

// HasErrors reports whether any errors were collected.
func (e *ProcessingErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

func (e *ProcessingErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d files failed to process (first: %v)", len(e.Errors), e.Errors[0])
}

// DefaultWorkerMultiplier is applied to NumCPU for the worker count. File
// analysis mixes disk reads with CGO parsing, so oversubscribing keeps the
// CPUs busy during I/O stalls.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each file is processed.
type ProgressFunc func()

// ErrorFunc is called when a file fails to process. A nil ErrorFunc drops
// errors silently.
type ErrorFunc func(path string, err error)

// MapFiles processes files in parallel, calling fn for each file with a
// dedicated parser. Results come back in arbitrary order.
func MapFiles[T any](files []string, fn func(*syntax.Parser, string) (T, error)) []T {
	return MapFilesN(files, 0, fn, nil, nil)
}

// MapFilesWithProgress processes files in parallel with a progress callback.
func MapFilesWithProgress[T any](files []string, fn func(*syntax.Parser, string) (T, error), onProgress ProgressFunc) []T {
	return MapFilesN(files, 0, fn, onProgress, nil)
}

// MapFilesN processes files with a configurable worker count and callbacks.
// A maxWorkers of zero or below selects the default.
func MapFilesN[T any](files []string, maxWorkers int, fn func(*syntax.Parser, string) (T, error), onProgress ProgressFunc, onError ErrorFunc) []T {
	if len(files) == 0 {
		return nil
	}
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU() * DefaultWorkerMultiplier
	}

	results := make([]T, 0, len(files))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(maxWorkers)
	for _, path := range files {
		p.Go(func() {
			// Tree-sitter parsers are not goroutine-safe; each task gets
			// its own.
			psr := syntax.New()
			defer psr.Close()

			result, err := fn(psr, path)
			if onProgress != nil {
				defer onProgress()
			}
			if err != nil {
				if onError != nil {
					onError(path, err)
				}
				return
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		})
	}
	p.Wait()

	return results
}

// MapFilesCtx processes files in parallel with cancellation support.
// Individual file failures are collected rather than stopping the pool;
// cancellation stops scheduling and is recorded per unprocessed file.
func MapFilesCtx[T any](ctx context.Context, files []string, fn func(*syntax.Parser, string) (T, error), onProgress ProgressFunc) ([]T, *ProcessingErrors) {
	if len(files) == 0 {
		return nil, nil
	}

	maxWorkers := runtime.NumCPU() * DefaultWorkerMultiplier
	results := make([]T, 0, len(files))
	errs := &ProcessingErrors{}
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(maxWorkers).WithContext(ctx)
	for _, path := range files {
		p.Go(func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				errs.Add(path, ctx.Err())
				return ctx.Err()
			default:
			}

			psr := syntax.New()
			defer psr.Close()

			result, err := fn(psr, path)
			if onProgress != nil {
				defer onProgress()
			}
			if err != nil {
				errs.Add(path, err)
				return nil
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}
	_ = p.Wait()

	if !errs.HasErrors() {
		return results, nil
	}
	return results, errs
}

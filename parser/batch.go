package parser

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"

	"github.com/protolex/proto3parse/ast"
)

// FileResult is one file's outcome from ParseFiles.
type FileResult struct {
	Path string
	File *ast.FileNode
	Err  error
}

// ParseFiles parses each of the given named sources concurrently,
// bounded by maxParallelism permits (GOMAXPROCS, capped at NumCPU, when
// maxParallelism <= 0). Unlike a linker, this package's files are
// parsed independently of one another: there is no cross-file import
// resolution, so no dependency graph governs scheduling order, only the
// semaphore's permit count.
//
// ParseFiles returns one FileResult per input, regardless of whether
// individual files failed. The results are in no particular order (sources
// is a map); each carries its Path. It returns a
// non-nil error only if ctx is cancelled before every file finishes.
func ParseFiles(ctx context.Context, sources map[string]string, maxParallelism int) ([]FileResult, error) {
	paths := make([]string, 0, len(sources))
	for path := range sources {
		paths = append(paths, path)
	}

	par := maxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
		if cpus := runtime.NumCPU(); par > cpus {
			par = cpus
		}
	}
	sem := semaphore.NewWeighted(int64(par))

	results := make([]FileResult, len(paths))
	ready := make([]chan struct{}, len(paths))
	for i, path := range paths {
		i, path := i, path
		ready[i] = make(chan struct{})
		if err := sem.Acquire(ctx, 1); err != nil {
			close(ready[i])
			results[i] = FileResult{Path: path, Err: ctx.Err()}
			continue
		}
		go func() {
			defer sem.Release(1)
			defer close(ready[i])
			file, err := Parse(sources[path])
			results[i] = FileResult{Path: path, File: file, Err: err}
		}()
	}

	for i := range paths {
		select {
		case <-ready[i]:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return results, nil
}

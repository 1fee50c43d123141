// Package materialize turns generated in-memory artifacts into files on
// disk. Parent directories are created idempotently up front; writes fan out
// onto a bounded worker pool and every outcome is collected, so one failing
// artifact never hides or aborts its siblings. Writes are plain overwrites
// of distinct paths, which makes the whole operation safe to retry after a
// partial failure or cancellation.
package materialize

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Artifact is one file to write, with a path relative to the base directory.
type Artifact struct {
	Path    string
	Content []byte
}

// WriteFailure records one artifact that could not be written.
type WriteFailure struct {
	Path  string
	Cause error
}

func (f WriteFailure) String() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Cause)
}

// WriteError aggregates every failed write of a materialization run.
type WriteError struct {
	Failures []WriteFailure
	Total    int
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%d of %d artifact writes failed (first: %s)", len(e.Failures), e.Total, e.Failures[0])
}

// Options configures a materialization run.
type Options struct {
	// Workers bounds the number of concurrent writes. Zero or negative
	// means DefaultWorkers.
	Workers int
	// WriteTimeout bounds each individual write. Zero means no timeout.
	WriteTimeout time.Duration
	// Logger receives per-write debug logging; nil discards.
	Logger *slog.Logger
}

// DefaultWorkers is the write pool size when Options.Workers is unset.
const DefaultWorkers = 8

// Write materializes the artifacts under base. On full success it returns
// the written paths (relative, sorted). If any write fails it still finishes
// the rest, then returns a *WriteError listing every (path, cause) pair.
// Cancelling ctx stops dispatching new writes and awaits in-flight ones;
// files already written are left in place.
func Write(ctx context.Context, base string, artifacts []Artifact, opts Options) ([]string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	if err := createParentDirs(base, artifacts); err != nil {
		return nil, &WriteError{
			Failures: []WriteFailure{{Path: base, Cause: err}},
			Total:    len(artifacts),
		}
	}

	var (
		mu       sync.Mutex
		failures []WriteFailure
		written  []string
	)

	var g errgroup.Group
	g.SetLimit(workers)
	for _, artifact := range artifacts {
		if err := ctx.Err(); err != nil {
			// Stop dispatching; everything not yet started is recorded as
			// failed with the cancellation cause.
			mu.Lock()
			failures = append(failures, WriteFailure{Path: artifact.Path, Cause: err})
			mu.Unlock()
			continue
		}
		g.Go(func() error {
			err := writeOne(ctx, filepath.Join(base, artifact.Path), artifact.Content, opts.WriteTimeout)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Debug("artifact write failed", "path", artifact.Path, "error", err)
				failures = append(failures, WriteFailure{Path: artifact.Path, Cause: err})
			} else {
				logger.Debug("artifact written", "path", artifact.Path)
				written = append(written, artifact.Path)
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(failures) > 0 {
		sort.Slice(failures, func(i, j int) bool { return failures[i].Path < failures[j].Path })
		return nil, &WriteError{Failures: failures, Total: len(artifacts)}
	}
	sort.Strings(written)
	return written, nil
}

// createParentDirs makes the distinct set of parent directories across all
// artifact paths. MkdirAll is idempotent, so re-materializing over an
// existing tree is not an error.
func createParentDirs(base string, artifacts []Artifact) error {
	dirs := make(map[string]struct{})
	for _, a := range artifacts {
		dirs[filepath.Dir(filepath.Join(base, a.Path))] = struct{}{}
	}
	sorted := make([]string, 0, len(dirs))
	for d := range dirs {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)
	for _, dir := range sorted {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// writeOne writes a single file, honoring the per-write timeout. The write
// itself runs in a goroutine because os.WriteFile cannot be interrupted;
// on timeout the write may still complete in the background, which is
// harmless since it is an idempotent overwrite of a distinct path.
func writeOne(ctx context.Context, path string, content []byte, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		done <- os.WriteFile(path, content, 0600)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("write file: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

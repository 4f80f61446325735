// Package fswalk walks install trees with a configurable depth bound
package fswalk

import (
	"context"
	"errors"
	"io/fs"

	"github.com/charlievieth/fastwalk"
)

// ErrStop ends a walk early without reporting an error.
var ErrStop = errors.New("fswalk: stop")

// Options bounds a walk.
type Options struct {
	// MaxDepth limits how many levels below the root are visited.
	// Files directly inside the root are at depth 1. Zero means unbounded.
	MaxDepth int
	// Workers is the number of concurrent readers; zero uses fastwalk's default.
	Workers int
}

// FileFunc is called for every regular file. It may run concurrently
// from several goroutines and must be safe for that.
type FileFunc func(path string, d fs.DirEntry) error

// Files calls fn for each regular file under root. Unreadable entries and
// directories are skipped. Returning ErrStop from fn ends the walk with a
// nil error; any other error from fn aborts the walk and is returned.
// Cancelling ctx aborts the walk with ctx.Err().
func Files(ctx context.Context, root string, opts Options, fn FileFunc) error {
	conf := fastwalk.Config{
		Follow:     false,
		NumWorkers: opts.Workers,
		MaxDepth:   opts.MaxDepth,
	}

	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil || d == nil || !d.Type().IsRegular() {
			return nil
		}
		return fn(path, d)
	})
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

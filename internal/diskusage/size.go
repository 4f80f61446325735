// Package diskusage computes the on-disk size of install trees
package diskusage

import (
	"context"
	"io/fs"
	"sync/atomic"

	"github.com/dustin/go-humanize"

	"github.com/ilexum-group/browserscan/internal/fswalk"
	"github.com/ilexum-group/browserscan/internal/hostfs"
	"github.com/ilexum-group/browserscan/internal/utils"
)

// Sizer sums regular file sizes below a directory
type Sizer struct {
	maxDepth int
	workers  int
	fs       hostfs.FileAccessor
}

// NewSizer creates a sizer. maxDepth zero walks the whole tree.
func NewSizer(maxDepth, workers int) *Sizer {
	return &Sizer{maxDepth: maxDepth, workers: workers, fs: hostfs.New()}
}

// TotalSize returns the best known size of dir in bytes. Entries that
// vanish or cannot be read are skipped; a missing dir yields 0.
func (s *Sizer) TotalSize(ctx context.Context, dir string) uint64 {
	if !hostfs.IsDir(s.fs, dir) {
		return 0
	}

	var total atomic.Uint64
	err := fswalk.Files(ctx, dir, fswalk.Options{MaxDepth: s.maxDepth, Workers: s.workers},
		func(_ string, d fs.DirEntry) error {
			info, err := d.Info()
			if err != nil {
				return nil
			}
			if size := info.Size(); size > 0 {
				total.Add(uint64(size))
			}
			return nil
		})
	if err != nil {
		utils.LogDebug("Size walk incomplete", map[string]string{"dir": dir, "error": err.Error()})
	}

	utils.LogDebug("Install tree sized", map[string]string{
		"dir":  dir,
		"size": humanize.Bytes(total.Load()),
	})
	return total.Load()
}

// Package detector provides signature-based browser detection and engine classification
package detector

import (
	"context"
	"io/fs"
	"sync/atomic"

	"github.com/ilexum-group/browserscan/internal/fswalk"
	"github.com/ilexum-group/browserscan/internal/hostfs"
	"github.com/ilexum-group/browserscan/internal/utils"
	"github.com/ilexum-group/browserscan/pkg/models"
)

// Options bounds the two classification walks
type Options struct {
	DetectDepth int
	FamilyDepth int
	Workers     int
}

// DefaultOptions walks three levels for detection and two for the family.
var DefaultOptions = Options{DetectDepth: 3, FamilyDepth: 2}

// Classifier provides stateless, parallel-safe install tree classification
type Classifier struct {
	opts Options
	fs   hostfs.FileAccessor
}

// NewClassifier creates a classifier over the host filesystem
func NewClassifier(opts Options) *Classifier {
	return &Classifier{opts: opts, fs: hostfs.New()}
}

// Classify reports whether dir holds a browser and which engine it uses.
// Non-browsers are always EngineUnknown.
func (c *Classifier) Classify(ctx context.Context, dir string) (bool, models.EngineFamily) {
	if !c.IsBrowser(ctx, dir) {
		return false, models.EngineUnknown
	}
	return true, c.EngineFamily(ctx, dir)
}

// IsBrowser walks dir up to DetectDepth and stops at the first marker file.
func (c *Classifier) IsBrowser(ctx context.Context, dir string) bool {
	if !hostfs.IsDir(c.fs, dir) {
		return false
	}

	var found atomic.Bool
	err := fswalk.Files(ctx, dir, fswalk.Options{MaxDepth: c.opts.DetectDepth, Workers: c.opts.Workers},
		func(_ string, d fs.DirEntry) error {
			if IsBrowserFile(d.Name()) {
				found.Store(true)
				return fswalk.ErrStop
			}
			return nil
		})
	if err != nil {
		utils.LogDebug("Detection walk incomplete", map[string]string{"dir": dir, "error": err.Error()})
	}
	return found.Load()
}

// EngineFamily walks dir up to FamilyDepth and returns the highest
// priority family among the files seen, Other when none matches and
// Unknown when dir is not a directory.
func (c *Classifier) EngineFamily(ctx context.Context, dir string) models.EngineFamily {
	if !hostfs.IsDir(c.fs, dir) {
		return models.EngineUnknown
	}

	var best atomic.Int32
	best.Store(int32(len(FamilyRules)))
	err := fswalk.Files(ctx, dir, fswalk.Options{MaxDepth: c.opts.FamilyDepth, Workers: c.opts.Workers},
		func(_ string, d fs.DirEntry) error {
			idx := MatchFamily(d.Name())
			if idx < 0 {
				return nil
			}
			for {
				cur := best.Load()
				if int32(idx) >= cur || best.CompareAndSwap(cur, int32(idx)) {
					break
				}
			}
			if idx == 0 {
				return fswalk.ErrStop
			}
			return nil
		})
	if err != nil {
		utils.LogDebug("Family walk incomplete", map[string]string{"dir": dir, "error": err.Error()})
	}

	if idx := int(best.Load()); idx < len(FamilyRules) {
		return FamilyRules[idx].Family
	}
	return models.EngineOther
}

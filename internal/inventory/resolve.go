package inventory

import (
	"path/filepath"
	"strings"

	"github.com/ilexum-group/browserscan/internal/hostfs"
	"github.com/ilexum-group/browserscan/pkg/models"
)

// Resolver turns a record's install location into a usable directory
type Resolver struct {
	fsys hostfs.FileAccessor
}

// NewResolver creates a path resolver over fsys
func NewResolver(fsys hostfs.FileAccessor) *Resolver {
	if fsys == nil {
		fsys = hostfs.New()
	}
	return &Resolver{fsys: fsys}
}

// Resolve returns the cleaned install directory of app, or "" when the
// location is blank or does not name an existing directory.
func (r *Resolver) Resolve(app models.InstalledApp) string {
	path := CleanPath(app.InstallLocation)
	if path == "" || !hostfs.IsDir(r.fsys, path) {
		return ""
	}
	return path
}

// CleanPath strips whitespace and surrounding quotes from a registry path.
func CleanPath(raw string) string {
	path := strings.TrimSpace(raw)
	path = strings.Trim(path, `"'`)
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}

// Package hostfs provides read-only access to the host filesystem
package hostfs

import (
	"io/fs"
	"os"
)

// FileAccessor abstracts the file reads a scan performs.
type FileAccessor interface {
	ReadFile(path string) ([]byte, error)
	Open(path string) (*os.File, error)
	Stat(path string) (fs.FileInfo, error)
}

type hostFileAccessor struct{}

// New returns a FileAccessor backed by the host OS.
func New() FileAccessor {
	return &hostFileAccessor{}
}

//nolint:gosec // G304: Paths come from the software inventory by design
func (h *hostFileAccessor) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

//nolint:gosec // G304: Paths come from the software inventory by design
func (h *hostFileAccessor) Open(path string) (*os.File, error) {
	return os.Open(path)
}

func (h *hostFileAccessor) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// IsDir reports whether path names an existing directory.
func IsDir(fsys FileAccessor, path string) bool {
	if path == "" {
		return false
	}
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

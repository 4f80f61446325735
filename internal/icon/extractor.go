package icon

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/tc-hib/winres"

	"github.com/ilexum-group/browserscan/internal/hostfs"
)

// maxImageFileSize bounds image files read verbatim
const maxImageFileSize = 4 << 20

var (
	// ErrUnsupported is returned for references that are neither images nor PE files
	ErrUnsupported = errors.New("unsupported icon source")
	// ErrNoIcon is returned for PE files without icon groups
	ErrNoIcon = errors.New("no icon resource")
)

var imageExtensions = map[string]bool{
	".ico": true, ".png": true, ".bmp": true, ".icns": true,
	".gif": true, ".jpg": true, ".jpeg": true,
}

// FileExtractor reads icons from image files and from the resources of
// Windows executables and libraries.
type FileExtractor struct {
	fs hostfs.FileAccessor
}

// NewFileExtractor creates an extractor over the host filesystem
func NewFileExtractor() *FileExtractor {
	return &FileExtractor{fs: hostfs.New()}
}

// Extract returns the base64 encoded image referenced by ref.
func (e *FileExtractor) Extract(ref string) (string, error) {
	path, index := ParseReference(ref)
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrUnsupported)
	}

	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case ext == ".exe" || ext == ".dll":
		data, err = e.fromPE(path, index)
	case imageExtensions[ext]:
		data, err = e.fromImage(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func (e *FileExtractor) fromImage(path string) ([]byte, error) {
	info, err := e.fs.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() || info.Size() > maxImageFileSize {
		return nil, fmt.Errorf("%w: %s is not a usable image file", ErrUnsupported, path)
	}
	data, err := e.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if mtype := mimetype.Detect(data); !strings.HasPrefix(mtype.String(), "image/") {
		return nil, fmt.Errorf("%w: %s is %s", ErrUnsupported, path, mtype.String())
	}
	return data, nil
}

// fromPE re-encodes an RT_GROUP_ICON resource as an ICO file. A
// non-negative index selects the n-th group, a negative one the group
// whose resource id is -index.
func (e *FileExtractor) fromPE(path string, index int) ([]byte, error) {
	f, err := e.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rs, err := winres.LoadFromEXE(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read resources of %s: %w", path, err)
	}

	var id winres.Identifier
	if index < 0 {
		id = winres.ID(-index)
	} else {
		groups := iconGroups(rs)
		if index >= len(groups) {
			return nil, fmt.Errorf("%w: %s has %d icon groups, want index %d", ErrNoIcon, path, len(groups), index)
		}
		id = groups[index]
	}

	ico, err := rs.GetIcon(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load icon group of %s: %w", path, err)
	}
	var buf bytes.Buffer
	if err := ico.SaveICO(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode icon of %s: %w", path, err)
	}
	return buf.Bytes(), nil
}

// iconGroups lists group icon ids in resource order, one per id.
func iconGroups(rs *winres.ResourceSet) []winres.Identifier {
	var ids []winres.Identifier
	rs.WalkType(winres.RT_GROUP_ICON, func(resID winres.Identifier, _ uint16, _ []byte) bool {
		if len(ids) == 0 || ids[len(ids)-1] != resID {
			ids = append(ids, resID)
		}
		return true
	})
	return ids
}

// ParseReference splits an inventory icon reference such as
// `"C:\Program Files\App\app.exe",0` into its path and icon index.
func ParseReference(ref string) (string, int) {
	ref = strings.TrimSpace(ref)
	index := 0

	if strings.HasPrefix(ref, `"`) {
		if end := strings.Index(ref[1:], `"`); end >= 0 {
			path := ref[1 : end+1]
			rest := strings.TrimSpace(ref[end+2:])
			if n, ok := parseIndex(strings.TrimPrefix(rest, ",")); ok && strings.HasPrefix(rest, ",") {
				index = n
			}
			return strings.TrimSpace(path), index
		}
		ref = strings.Trim(ref, `"`)
	}

	if comma := strings.LastIndex(ref, ","); comma >= 0 {
		if n, ok := parseIndex(ref[comma+1:]); ok {
			return strings.TrimSpace(ref[:comma]), n
		}
	}
	return ref, index
}

func parseIndex(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil
}

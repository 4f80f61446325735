// Package icon resolves displayable icons for inventory entries
package icon

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/ilexum-group/browserscan/internal/utils"
)

const dataURIPrefix = "data:image/"

// Extractor pulls base64 image data out of an icon reference. The result
// may or may not carry a data URI prefix.
type Extractor interface {
	Extract(ref string) (string, error)
}

// ExtractorFunc adapts a function to Extractor
type ExtractorFunc func(ref string) (string, error)

// Extract calls f(ref).
func (f ExtractorFunc) Extract(ref string) (string, error) {
	return f(ref)
}

// Resolver turns icon references into data URIs, never failing
type Resolver struct {
	extractor Extractor
}

// NewResolver creates a resolver over the given extractor
func NewResolver(extractor Extractor) *Resolver {
	return &Resolver{extractor: extractor}
}

// Resolve returns a data URI for ref, or Placeholder when no image can
// be produced.
func (r *Resolver) Resolve(ref string) string {
	if strings.TrimSpace(ref) == "" {
		return Placeholder
	}

	data, err := r.extractor.Extract(ref)
	if err != nil {
		utils.LogDebug("Icon extraction failed", map[string]string{"icon": ref, "error": err.Error()})
		return Placeholder
	}
	if data == "" {
		return Placeholder
	}
	return EnsureDataURI(data)
}

// EnsureDataURI leaves image data URIs untouched and prefixes raw base64
// payloads with their sniffed image type, defaulting to PNG.
func EnsureDataURI(data string) string {
	if strings.HasPrefix(data, dataURIPrefix) {
		return data
	}
	return "data:" + sniffImageType(data) + ";base64," + data
}

func sniffImageType(payload string) string {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "image/png"
	}
	mtype := mimetype.Detect(raw).String()
	if !strings.HasPrefix(mtype, "image/") {
		return "image/png"
	}
	return mtype
}

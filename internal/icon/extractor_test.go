package icon

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tc-hib/winres"
)

func testImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		img.Set(x, x, color.NRGBA{R: 255, A: 255})
	}
	return img
}

func writePNG(t *testing.T, path string) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return buf.Bytes()
}

func writeICO(t *testing.T, path string) []byte {
	t.Helper()
	ico, err := winres.NewIconFromImages([]image.Image{testImage()})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, ico.SaveICO(&buf))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return buf.Bytes()
}

func TestParseReference(t *testing.T) {
	tests := []struct {
		ref   string
		path  string
		index int
	}{
		{`C:\Program Files\App\app.exe`, `C:\Program Files\App\app.exe`, 0},
		{`C:\Program Files\App\app.exe,0`, `C:\Program Files\App\app.exe`, 0},
		{`C:\Program Files\App\app.exe,2`, `C:\Program Files\App\app.exe`, 2},
		{`C:\App\app.exe,-101`, `C:\App\app.exe`, -101},
		{`"C:\Program Files\App\app.exe",1`, `C:\Program Files\App\app.exe`, 1},
		{`"C:\Program Files\App\app.exe"`, `C:\Program Files\App\app.exe`, 0},
		{`  C:\App\icon.ico  `, `C:\App\icon.ico`, 0},
		{`C:\Odd,Name\icon.ico`, `C:\Odd,Name\icon.ico`, 0},
		{`"C:\App\app.exe`, `C:\App\app.exe`, 0},
		{``, ``, 0},
	}
	for _, tt := range tests {
		path, index := ParseReference(tt.ref)
		assert.Equal(t, tt.path, path, tt.ref)
		assert.Equal(t, tt.index, index, tt.ref)
	}
}

func TestExtractImageFiles(t *testing.T) {
	dir := t.TempDir()
	pngData := writePNG(t, filepath.Join(dir, "logo.png"))
	icoData := writeICO(t, filepath.Join(dir, "app.ico"))

	e := NewFileExtractor()

	got, err := e.Extract(filepath.Join(dir, "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(pngData), got)

	got, err = e.Extract(`"` + filepath.Join(dir, "app.ico") + `",0`)
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(icoData), got)
	assert.True(t, strings.HasPrefix(EnsureDataURI(got), "data:image/x-icon;base64,"))
}

func TestExtractRejectsNonImages(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "fake.png")
	require.NoError(t, os.WriteFile(fake, []byte("plain text, not an image"), 0o600))

	e := NewFileExtractor()
	_, err := e.Extract(fake)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = e.Extract(filepath.Join(dir, "readme.txt"))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = e.Extract("")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestExtractBrokenExecutable(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "chrome.exe")
	require.NoError(t, os.WriteFile(exe, []byte("MZ not really a PE file"), 0o600))

	e := NewFileExtractor()
	_, err := e.Extract(exe + ",0")
	assert.Error(t, err)

	_, err = e.Extract(filepath.Join(dir, "missing.exe"))
	assert.Error(t, err)
}

func TestResolverWithFileExtractor(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "logo.png"))

	r := NewResolver(NewFileExtractor())
	assert.True(t, strings.HasPrefix(r.Resolve(filepath.Join(dir, "logo.png")), "data:image/png;base64,"))
	assert.Equal(t, Placeholder, r.Resolve(filepath.Join(dir, "missing.exe")+",0"))
}

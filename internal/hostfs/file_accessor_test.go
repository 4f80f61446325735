package hostfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "chrome.exe")
	require.NoError(t, os.WriteFile(file, []byte("MZ"), 0o600))

	fsys := New()
	assert.True(t, IsDir(fsys, dir))
	assert.False(t, IsDir(fsys, file))
	assert.False(t, IsDir(fsys, filepath.Join(dir, "missing")))
	assert.False(t, IsDir(fsys, ""))
}

func TestHostFileAccessor(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pak"), []byte("pak"), 0o600))

	fsys := New()
	data, err := fsys.ReadFile(filepath.Join(dir, "a.pak"))
	require.NoError(t, err)
	assert.Equal(t, []byte("pak"), data)

	f, err := fsys.Open(filepath.Join(dir, "a.pak"))
	require.NoError(t, err)
	assert.NoError(t, f.Close())
}

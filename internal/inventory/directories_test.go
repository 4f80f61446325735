package inventory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"
)

func writeInfoPlist(t *testing.T, bundle string, info map[string]string) {
	t.Helper()
	data, err := plist.Marshal(info, plist.XMLFormat)
	require.NoError(t, err)
	contents := filepath.Join(bundle, "Contents")
	require.NoError(t, os.MkdirAll(contents, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(contents, "Info.plist"), data, 0o644))
}

func TestDirectoriesPlainDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "apps", "Zeta"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "apps", "Alpha"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "apps", "notes.txt"), []byte("x"), 0o644))

	apps := NewDirectories(nil, filepath.Join(root, "apps", "*")).Enumerate(context.Background())
	require.Len(t, apps, 2)
	assert.Equal(t, "Alpha", apps[0].DisplayName)
	assert.Equal(t, filepath.Join(root, "apps", "Alpha"), apps[0].InstallLocation)
	assert.Equal(t, SourceDirectory, apps[0].Source)
	assert.Equal(t, "Zeta", apps[1].DisplayName)
}

func TestDirectoriesBundleMetadata(t *testing.T) {
	root := t.TempDir()
	bundle := filepath.Join(root, "Applications", "Browser.app")
	writeInfoPlist(t, bundle, map[string]string{
		"CFBundleName":               "Browser",
		"CFBundleDisplayName":        "My Browser",
		"CFBundleShortVersionString": "120.0",
		"CFBundleIconFile":           "app",
	})

	apps := NewDirectories(nil, filepath.Join(root, "**", "*.app")).Enumerate(context.Background())
	require.Len(t, apps, 1)
	assert.Equal(t, "My Browser", apps[0].DisplayName)
	assert.Equal(t, "120.0", apps[0].DisplayVersion)
	assert.Equal(t, filepath.Join(bundle, "Contents", "Resources", "app.icns"), apps[0].DisplayIcon)
}

func TestDirectoriesBundleWithoutPlist(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Editor.app"), 0o755))

	apps := NewDirectories(nil, filepath.Join(root, "*.app")).Enumerate(context.Background())
	require.Len(t, apps, 1)
	assert.Equal(t, "Editor", apps[0].DisplayName)
	assert.Empty(t, apps[0].DisplayIcon)
}

func TestDirectoriesBadPattern(t *testing.T) {
	apps := NewDirectories(nil, "[").Enumerate(context.Background())
	assert.NotNil(t, apps)
	assert.Empty(t, apps)
}

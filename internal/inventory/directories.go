package inventory

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"howett.net/plist"

	"github.com/ilexum-group/browserscan/internal/hostfs"
	"github.com/ilexum-group/browserscan/internal/utils"
	"github.com/ilexum-group/browserscan/pkg/models"
)

// SourceDirectory marks records produced from directory patterns
const SourceDirectory = "directory"

const bundleSuffix = ".app"

type bundleInfo struct {
	DisplayName string `plist:"CFBundleDisplayName"`
	Name        string `plist:"CFBundleName"`
	Version     string `plist:"CFBundleShortVersionString"`
	IconFile    string `plist:"CFBundleIconFile"`
	Identifier  string `plist:"CFBundleIdentifier"`
}

// Directories turns directories matching glob patterns into records, for
// hosts whose software is not listed in a registry.
type Directories struct {
	fsys     hostfs.FileAccessor
	patterns []string
}

// NewDirectories creates a directory inventory. Patterns may use "**".
func NewDirectories(fsys hostfs.FileAccessor, patterns ...string) *Directories {
	if fsys == nil {
		fsys = hostfs.New()
	}
	return &Directories{fsys: fsys, patterns: patterns}
}

// Enumerate implements Inventory
func (d *Directories) Enumerate(ctx context.Context) []models.InstalledApp {
	apps := make([]models.InstalledApp, 0)
	for _, pattern := range d.patterns {
		if ctx.Err() != nil {
			break
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			utils.LogWarn("Invalid directory pattern", map[string]string{
				"pattern": pattern,
				"error":   err.Error(),
			})
			continue
		}
		sort.Strings(matches)
		for _, dir := range matches {
			if !hostfs.IsDir(d.fsys, dir) {
				continue
			}
			apps = append(apps, d.record(dir))
		}
	}
	return apps
}

func (d *Directories) record(dir string) models.InstalledApp {
	app := models.InstalledApp{
		DisplayName:     strings.TrimSuffix(filepath.Base(dir), bundleSuffix),
		InstallLocation: dir,
		Source:          SourceDirectory,
	}

	info, ok := d.readBundle(dir)
	if !ok {
		return app
	}
	switch {
	case strings.TrimSpace(info.DisplayName) != "":
		app.DisplayName = strings.TrimSpace(info.DisplayName)
	case strings.TrimSpace(info.Name) != "":
		app.DisplayName = strings.TrimSpace(info.Name)
	}
	app.DisplayVersion = strings.TrimSpace(info.Version)
	if icon := strings.TrimSpace(info.IconFile); icon != "" {
		if filepath.Ext(icon) == "" {
			icon += ".icns"
		}
		app.DisplayIcon = filepath.Join(dir, "Contents", "Resources", icon)
	}
	return app
}

func (d *Directories) readBundle(dir string) (bundleInfo, bool) {
	var info bundleInfo
	data, err := d.fsys.ReadFile(filepath.Join(dir, "Contents", "Info.plist"))
	if err != nil || len(data) == 0 {
		return info, false
	}
	if _, err := plist.Unmarshal(data, &info); err != nil {
		utils.LogDebug("Failed to parse bundle Info.plist", map[string]string{
			"path":  dir,
			"error": err.Error(),
		})
		return info, false
	}
	return info, true
}

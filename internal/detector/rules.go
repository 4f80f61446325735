package detector

import (
	"path/filepath"
	"strings"

	"github.com/ilexum-group/browserscan/pkg/models"
)

// BrowserMarkers are lower-case filename substrings that flag an install
// tree as browser-class. They are deliberately broad.
var BrowserMarkers = []string{
	// libcef
	"libcef", "cef.dll", "cef.pak",
	// Electron
	"electron", "electron.asar", "app.asar",
	// NW.js
	"nwjs", "nw.exe", "nwjc.exe",
	// CefSharp
	"cefsharp.browsersubprocess.exe", "cefsharp.dll",
	// MiniBlink
	"miniblink", "node.dll", "miniblink.dll",
	// Chrome/Chromium core
	"chrome", "chromium",
}

// BrowserExtensions are resource file extensions common to embedded browsers.
var BrowserExtensions = []string{".asar", ".pak", ".dat"}

// FamilyRule maps strict filename markers to an engine family.
type FamilyRule struct {
	Family  models.EngineFamily
	Markers []string
}

// FamilyRules are ordered by priority, highest first.
var FamilyRules = []FamilyRule{
	{Family: models.EngineLibCef, Markers: []string{"libcef.dll", "cef.dll"}},
	{Family: models.EngineElectron, Markers: []string{"electron.exe", "electron.asar", "app.asar"}},
	{Family: models.EngineNWJS, Markers: []string{"nw.exe", "nwjs"}},
	{Family: models.EngineCefSharp, Markers: []string{"cefsharp.dll"}},
	{Family: models.EngineMiniBlink, Markers: []string{"miniblink.dll", "node.dll"}},
	{Family: models.EngineChromeChromium, Markers: []string{"chrome.exe", "chromium"}},
	{Family: models.EngineEdge, Markers: []string{"msedge.exe"}},
	{Family: models.EngineFirefox, Markers: []string{"firefox.exe"}},
}

// IsBrowserFile reports whether a file name carries a broad browser marker.
func IsBrowserFile(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range BrowserMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	ext := strings.ToLower(filepath.Ext(lower))
	for _, e := range BrowserExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// MatchFamily returns the index into FamilyRules of the first rule whose
// marker is contained in name, or -1.
func MatchFamily(name string) int {
	lower := strings.ToLower(name)
	for i, rule := range FamilyRules {
		for _, marker := range rule.Markers {
			if strings.Contains(lower, marker) {
				return i
			}
		}
	}
	return -1
}

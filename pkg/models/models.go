// Package models defines data structures for installed software and the browser reports derived from it
package models

// InstalledApp represents one entry of the host's software inventory.
// Empty strings mark absent values.
type InstalledApp struct {
	DisplayName     string `json:"display_name"`
	InstallLocation string `json:"install_location"`
	DisplayIcon     string `json:"display_icon"`
	UninstallString string `json:"uninstall_string"`
	DisplayVersion  string `json:"display_version"`
	Publisher       string `json:"publisher"`
	Source          string `json:"source"` // Inventory location that produced the entry
}

// ClassifiedApp is an InstalledApp enriched by a scan
type ClassifiedApp struct {
	InstalledApp
	InstallDir string       `json:"install_dir"` // Verified install directory, empty when unknown
	IsBrowser  bool         `json:"is_browser"`
	Engine     EngineFamily `json:"engine"`
	SizeBytes  uint64       `json:"size_bytes"`
	Icon       string       `json:"icon,omitempty"`
}

// Report projects a browser onto the payload delivered to event consumers.
func (c ClassifiedApp) Report() BrowserReport {
	return BrowserReport{
		DisplayName: c.DisplayName,
		Size:        c.SizeBytes,
		BrowserType: c.Engine.String(),
		Icon:        c.Icon,
	}
}

// BrowserReport is the payload emitted once per detected browser
type BrowserReport struct {
	DisplayName string `json:"displayName"`
	Size        uint64 `json:"size"`
	BrowserType string `json:"browserType"`
	Icon        string `json:"icon"`
}

// ScanSummary aggregates the reports of a completed scan
type ScanSummary struct {
	Size  uint64 `json:"size"`
	Count int    `json:"count"`
}

// Add accounts one emitted report.
func (s *ScanSummary) Add(r BrowserReport) {
	s.Count++
	s.Size += r.Size
}

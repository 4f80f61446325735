// Package models - scan metadata
package models

import (
	"time"

	"github.com/google/uuid"
)

// ScanRecord describes one scan invocation. It is never persisted.
type ScanRecord struct {
	// Unique identifier for this scan (UUID v4)
	ID string `json:"id"`

	// Hostname of the scanned machine
	Hostname string `json:"hostname"`

	// UTC timestamps of the scan boundaries
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Duration   string    `json:"duration"`

	// Installed is the number of inventory records enumerated
	Installed int `json:"installed"`

	// Unclassifiable counts records without a verified install directory
	Unclassifiable int `json:"unclassifiable"`

	// NonBrowsers counts records whose directory matched no marker
	NonBrowsers int `json:"non_browsers"`

	// EmitFailures counts reports the sink refused
	EmitFailures int `json:"emit_failures"`

	// Skipped counts records left unprocessed after cancellation
	Skipped int `json:"skipped"`

	Summary ScanSummary `json:"summary"`
}

// NewScanRecord starts a scan record for hostname.
func NewScanRecord(hostname string) *ScanRecord {
	return &ScanRecord{
		ID:        uuid.New().String(),
		Hostname:  hostname,
		StartedAt: time.Now().UTC(),
	}
}

// Finish stamps the end of the scan.
func (r *ScanRecord) Finish() {
	r.FinishedAt = time.Now().UTC()
	r.Duration = r.FinishedAt.Sub(r.StartedAt).String()
}

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineFamilyLabels(t *testing.T) {
	want := []string{"Unknown", "libcef", "Electron", "NWJS", "CefSharp", "MiniBlink", "Chrome/Chromium", "Edge", "Firefox", "Other"}
	families := EngineFamilies()
	require.Len(t, families, len(want))
	for i, f := range families {
		assert.Equal(t, want[i], f.String())
	}
	assert.Equal(t, "EngineFamily(42)", EngineFamily(42).String())

	text, err := EngineEdge.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Edge", string(text))
}

func TestBrowserReportShape(t *testing.T) {
	app := ClassifiedApp{
		InstalledApp: InstalledApp{DisplayName: "Brave"},
		IsBrowser:    true,
		Engine:       EngineChromeChromium,
		SizeBytes:    10,
		Icon:         "data:image/png;base64,AA==",
	}

	data, err := json.Marshal(app.Report())
	require.NoError(t, err)
	assert.JSONEq(t, `{"displayName":"Brave","size":10,"browserType":"Chrome/Chromium","icon":"data:image/png;base64,AA=="}`, string(data))
}

func TestScanSummaryAdd(t *testing.T) {
	var s ScanSummary
	s.Add(BrowserReport{Size: 5})
	s.Add(BrowserReport{Size: 7})
	assert.Equal(t, ScanSummary{Size: 12, Count: 2}, s)
}

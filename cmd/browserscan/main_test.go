package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCountWithoutHives(t *testing.T) {
	out := execute(t, "count", "--hive-dir", t.TempDir(), "--log-level", "error")
	assert.Equal(t, "0\n", out)
}

func TestScanDirectoryCandidates(t *testing.T) {
	root := t.TempDir()
	browser := filepath.Join(root, "apps", "Chromium")
	require.NoError(t, os.MkdirAll(browser, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(browser, "chrome.exe"), make([]byte, 64), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "apps", "Notes"), 0o755))
	metrics := filepath.Join(root, "metrics.prom")

	out := execute(t, "scan",
		"--hive-dir", root,
		"--dir", filepath.Join(root, "apps", "*"),
		"--workers", "2",
		"--log-level", "error",
		"--metrics-file", metrics,
	)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var event struct {
		Event   string `json:"event"`
		Payload struct {
			DisplayName string `json:"displayName"`
			Size        uint64 `json:"size"`
			BrowserType string `json:"browserType"`
		} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &event))
	assert.Equal(t, "detection-started", event.Event)
	assert.Equal(t, "Chromium", event.Payload.DisplayName)
	assert.Equal(t, uint64(64), event.Payload.Size)
	assert.Equal(t, "Chrome/Chromium", event.Payload.BrowserType)

	var summary summaryLine
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &summary))
	assert.Equal(t, "summary", summary.Event)
	assert.Equal(t, 1, summary.Summary.Count)
	assert.Equal(t, uint64(64), summary.Summary.Size)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `browserscan_browsers_total{engine="Chrome/Chromium"} 1`)
}

func TestInvalidWorkers(t *testing.T) {
	rootCmd.SetArgs([]string{"count", "--workers", "0"})
	assert.Error(t, rootCmd.Execute())
	rootCmd.SetArgs([]string{"count", "--workers", "4"})
	require.NoError(t, rootCmd.Execute())
}

// stallingWriter holds the first write long enough for the event buffer to fill.
type stallingWriter struct {
	bytes.Buffer
	stalled bool
}

func (w *stallingWriter) Write(p []byte) (int, error) {
	if !w.stalled {
		w.stalled = true
		time.Sleep(time.Second)
	}
	return w.Buffer.Write(p)
}

func TestScanSummaryAccountsForDroppedReports(t *testing.T) {
	t.Setenv("BROWSERSCAN_SINK_BUFFER", "1")
	root := t.TempDir()
	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		dir := filepath.Join(root, "browsers", name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "resources.pak"), make([]byte, 8), 0o644))
	}

	out := &stallingWriter{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"scan",
		"--hive-dir", root,
		"--dir", filepath.Join(root, "browsers", "*"),
		"--workers", "1",
		"--log-level", "error",
	})
	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	var summary summaryLine
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &summary))

	events := len(lines) - 1
	assert.Equal(t, 3, summary.Summary.Count)
	assert.GreaterOrEqual(t, summary.EmitFailures, 1)
	assert.Equal(t, summary.Summary.Count, events+summary.EmitFailures)
}

func TestScanHelpDescribesDrops(t *testing.T) {
	assert.Contains(t, scanCmd.Long, "dropped")
	assert.Contains(t, scanCmd.Long, "emit_failures")
}

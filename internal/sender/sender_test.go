package sender

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilexum-group/browserscan/pkg/models"
)

var chrome = models.BrowserReport{
	DisplayName: "Google Chrome",
	Size:        2048,
	BrowserType: "Chrome/Chromium",
	Icon:        "data:image/png;base64,AAAA",
}

func TestSinkFunc(t *testing.T) {
	var got []string
	sink := SinkFunc(func(event string, report models.BrowserReport) error {
		got = append(got, event+":"+report.DisplayName)
		return nil
	})

	require.NoError(t, sink.Emit(EventBrowserDetected, chrome))
	assert.Equal(t, []string{"detection-started:Google Chrome"}, got)
}

func TestChannelSinkNonBlocking(t *testing.T) {
	sink := NewChannelSink(1)

	require.NoError(t, sink.Emit(EventBrowserDetected, chrome))
	err := sink.Emit(EventBrowserDetected, chrome)
	assert.ErrorIs(t, err, ErrSinkFull)

	ev := <-sink.Events()
	assert.Equal(t, EventBrowserDetected, ev.Name)
	assert.Equal(t, chrome, ev.Payload)

	require.NoError(t, sink.Emit(EventBrowserDetected, chrome))
}

func TestChannelSinkClose(t *testing.T) {
	sink := NewChannelSink(2)
	require.NoError(t, sink.Emit(EventBrowserDetected, chrome))
	sink.Close()
	sink.Close()

	assert.ErrorIs(t, sink.Emit(EventBrowserDetected, chrome), ErrSinkClosed)

	var n int
	for range sink.Events() {
		n++
	}
	assert.Equal(t, 1, n)
}

func TestWriterSinkNDJSON(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)

	require.NoError(t, sink.Emit(EventBrowserDetected, chrome))
	require.NoError(t, sink.WriteValue(models.ScanSummary{Size: 2048, Count: 1}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var ev struct {
		Event   string         `json:"event"`
		Payload map[string]any `json:"payload"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &ev))
	assert.Equal(t, "detection-started", ev.Event)
	assert.Equal(t, "Google Chrome", ev.Payload["displayName"])
	assert.Equal(t, float64(2048), ev.Payload["size"])
	assert.Equal(t, "Chrome/Chromium", ev.Payload["browserType"])
	assert.Equal(t, "data:image/png;base64,AAAA", ev.Payload["icon"])

	assert.JSONEq(t, `{"size":2048,"count":1}`, lines[1])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriterSinkWriteError(t *testing.T) {
	err := NewWriterSink(failingWriter{}).Emit(EventBrowserDetected, chrome)
	assert.ErrorContains(t, err, "broken pipe")
}

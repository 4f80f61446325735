// Package sender delivers scan results to a consumer as they are produced
package sender

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/ilexum-group/browserscan/internal/utils"
	"github.com/ilexum-group/browserscan/pkg/models"
)

// EventBrowserDetected is the event name every browser report is sent under
const EventBrowserDetected = "detection-started"

// ErrSinkFull is returned by a sink that cannot accept an event without blocking
var ErrSinkFull = errors.New("sink buffer full")

// ErrSinkClosed is returned after a sink has been closed
var ErrSinkClosed = errors.New("sink closed")

// Sink receives reports. Emit must not block the scan.
type Sink interface {
	Emit(event string, report models.BrowserReport) error
}

// SinkFunc adapts a function to a Sink
type SinkFunc func(event string, report models.BrowserReport) error

// Emit implements Sink
func (f SinkFunc) Emit(event string, report models.BrowserReport) error {
	return f(event, report)
}

// Event is one emitted report
type Event struct {
	Name    string               `json:"event"`
	Payload models.BrowserReport `json:"payload"`
}

// ChannelSink forwards events to a bounded channel
type ChannelSink struct {
	mu     sync.RWMutex
	events chan Event
	closed bool
}

// NewChannelSink creates a channel sink holding up to buffer pending events
func NewChannelSink(buffer int) *ChannelSink {
	if buffer < 0 {
		buffer = 0
	}
	return &ChannelSink{events: make(chan Event, buffer)}
}

// Events returns the receive side of the sink
func (c *ChannelSink) Events() <-chan Event {
	return c.events
}

// Emit implements Sink. It never blocks: a full buffer yields ErrSinkFull.
func (c *ChannelSink) Emit(event string, report models.BrowserReport) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrSinkClosed
	}

	select {
	case c.events <- Event{Name: event, Payload: report}:
		return nil
	default:
		return ErrSinkFull
	}
}

// Close closes the event channel. Further emits fail with ErrSinkClosed.
func (c *ChannelSink) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.events)
}

// WriterSink writes one JSON object per event, newline-delimited
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a sink writing to w
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Emit implements Sink
func (s *WriterSink) Emit(event string, report models.BrowserReport) error {
	return s.WriteValue(Event{Name: event, Payload: report})
}

// WriteValue writes any JSON-encodable value as one line
func (s *WriterSink) WriteValue(v any) error {
	data, err := sonic.Marshal(v)
	if err != nil {
		utils.LogError("Failed to marshal event", map[string]string{"error": err.Error()})
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(data); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

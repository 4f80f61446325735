// Package utils provides utility functions and types for browserscan
//
//nolint:revive // utils is a common pattern for internal utilities
package utils

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/crewjam/rfc5424"
)

// AppName is the RFC 5424 APP-NAME of every entry
const AppName = "browserscan"

// Logger defines the interface for logging operations
type Logger interface {
	LogInfo(message string, meta map[string]string)
	LogWarn(message string, meta map[string]string)
	LogError(message string, meta map[string]string)
	LogDebug(message string, meta map[string]string)
}

// RFC5424Logger implements Logger with RFC 5424 compliant syslog format using crewjam/rfc5424
type RFC5424Logger struct {
	appName     string
	hostname    string
	processID   string
	facility    rfc5424.Priority // Using the library's priority type for facility
	minSeverity rfc5424.Priority // Entries less severe than this are dropped
	out         io.Writer
	mu          sync.Mutex // Serializes writes to out
}

// NewRFC5424Logger creates a new RFC 5424 compliant logger writing to out.
func NewRFC5424Logger(appName string, out io.Writer) *RFC5424Logger {
	if out == nil {
		out = os.Stderr
	}
	return &RFC5424Logger{
		appName:     appName,
		hostname:    Hostname(),
		processID:   strconv.Itoa(os.Getpid()),
		facility:    rfc5424.User, // User-level facility
		minSeverity: rfc5424.Info,
		out:         out,
	}
}

// Hostname retrieves the system hostname, falling back to localhost.
func Hostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "localhost"
	}
	return hostname
}

// ParseLevel maps a level name (debug, info, warn, error) to a severity.
func ParseLevel(level string) (rfc5424.Priority, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return rfc5424.Debug, nil
	case "", "info":
		return rfc5424.Info, nil
	case "warn", "warning":
		return rfc5424.Warning, nil
	case "error":
		return rfc5424.Error, nil
	}
	return rfc5424.Info, fmt.Errorf("unknown log level %q", level)
}

// SetLevel sets the least severe level that is still written.
func (l *RFC5424Logger) SetLevel(severity rfc5424.Priority) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minSeverity = severity
}

// createMessage creates an RFC 5424 message using the library
func (l *RFC5424Logger) createMessage(severity rfc5424.Priority, message string, meta map[string]string) *rfc5424.Message {
	msg := &rfc5424.Message{
		Priority:  l.facility | severity, // Combine facility and severity
		Timestamp: time.Now().UTC(),
		Hostname:  l.hostname,
		AppName:   l.appName,
		ProcessID: l.processID,
		MessageID: fmt.Sprintf("ID%d", time.Now().UnixNano()%100000),
		Message:   []byte(message),
	}

	// Structured data keeps a stable key order
	keys := make([]string, 0, len(meta))
	for key := range meta {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		msg.AddDatum("meta@1", key, meta[key])
	}

	return msg
}

// writeLog writes the RFC 5424 entry to the output
func (l *RFC5424Logger) writeLog(severity rfc5424.Priority, message string, meta map[string]string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Lower numeric severities are more severe
	if severity > l.minSeverity {
		return
	}

	msg := l.createMessage(severity, message, meta)
	var formatted string
	data, err := msg.MarshalBinary()
	if err != nil {
		// Fallback to simple format if encoding fails
		formatted = fmt.Sprintf("<%d>1 %s %s %s %s - - %s",
			int(l.facility|severity),
			msg.Timestamp.Format(time.RFC3339),
			l.hostname, l.appName, l.processID, message)
	} else {
		formatted = string(data)
	}
	_, _ = fmt.Fprintln(l.out, formatted)
}

// LogInfo logs an informational message (severity Info)
func (l *RFC5424Logger) LogInfo(message string, meta map[string]string) {
	l.writeLog(rfc5424.Info, message, meta)
}

// LogWarn logs a warning message (severity Warning)
func (l *RFC5424Logger) LogWarn(message string, meta map[string]string) {
	l.writeLog(rfc5424.Warning, message, meta)
}

// LogError logs an error message (severity Error)
func (l *RFC5424Logger) LogError(message string, meta map[string]string) {
	l.writeLog(rfc5424.Error, message, meta)
}

// LogDebug logs a debug message (severity Debug)
func (l *RFC5424Logger) LogDebug(message string, meta map[string]string) {
	l.writeLog(rfc5424.Debug, message, meta)
}

// DefaultLogger is the global logger instance
var DefaultLogger *RFC5424Logger

// InitDefaultLogger initializes the global logger instance on stderr
func InitDefaultLogger(level string) error {
	severity, err := ParseLevel(level)
	if err != nil {
		return err
	}
	logger := NewRFC5424Logger(AppName, os.Stderr)
	logger.SetLevel(severity)
	DefaultLogger = logger
	return nil
}

// Convenience functions using the global logger

// LogInfo logs an informational message using the default logger
func LogInfo(message string, meta map[string]string) {
	if DefaultLogger != nil {
		DefaultLogger.LogInfo(message, meta)
	}
}

// LogWarn logs a warning message using the default logger
func LogWarn(message string, meta map[string]string) {
	if DefaultLogger != nil {
		DefaultLogger.LogWarn(message, meta)
	}
}

// LogError logs an error message using the default logger
func LogError(message string, meta map[string]string) {
	if DefaultLogger != nil {
		DefaultLogger.LogError(message, meta)
	}
}

// LogDebug logs a debug message using the default logger
func LogDebug(message string, meta map[string]string) {
	if DefaultLogger != nil {
		DefaultLogger.LogDebug(message, meta)
	}
}

// Package logging provides structured logging with secret redaction for warrant.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity level of a log entry.
type LogLevel string

// Log severity levels.
const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

var levelOrder = map[LogLevel]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// LogFormat represents the output format for log entries.
type LogFormat string

// Log output formats.
const (
	// FormatJSON outputs one JSON object per line.
	FormatJSON LogFormat = "json"
	// FormatHuman outputs logs in human-readable format (default for the CLI).
	FormatHuman LogFormat = "human"
)

// ParseLevel converts a configuration string into a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	level := LogLevel(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := levelOrder[level]; !ok {
		return "", fmt.Errorf("invalid log level %q (must be debug, info, warn or error)", s)
	}
	return level, nil
}

// ParseFormat converts a configuration string into a LogFormat.
func ParseFormat(s string) (LogFormat, error) {
	switch format := LogFormat(strings.ToLower(strings.TrimSpace(s))); format {
	case FormatJSON, FormatHuman:
		return format, nil
	default:
		return "", fmt.Errorf("invalid log format %q (must be json or human)", s)
	}
}

// Logger provides structured logging with secret redaction.
//
// All entries go to a single writer, stderr by default, so that stdout stays
// free for the provider message stream.
type Logger struct {
	level    LogLevel
	format   LogFormat
	redactor *Redactor
	out      io.Writer
	now      func() time.Time
	mu       sync.Mutex
}

// logEntry represents a single log entry in JSON format.
type logEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// New creates a new Logger instance writing to stderr.
func New(level LogLevel, format LogFormat) *Logger {
	return &Logger{
		level:    level,
		format:   format,
		redactor: NewRedactor(),
		out:      os.Stderr,
		now:      time.Now,
	}
}

// SetOutput sets a custom output writer.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
}

// Redactor returns the redactor applied to every entry.
func (l *Logger) Redactor() *Redactor {
	return l.redactor
}

// Debug logs a debug-level message.
func (l *Logger) Debug(msg string, fields ...map[string]any) {
	l.log(LevelDebug, msg, mergeFields(fields...))
}

// Info logs an info-level message.
func (l *Logger) Info(msg string, fields ...map[string]any) {
	l.log(LevelInfo, msg, mergeFields(fields...))
}

// Warn logs a warn-level message.
func (l *Logger) Warn(msg string, fields ...map[string]any) {
	l.log(LevelWarn, msg, mergeFields(fields...))
}

// Error logs an error-level message.
func (l *Logger) Error(msg string, fields ...map[string]any) {
	l.log(LevelError, msg, mergeFields(fields...))
}

func (l *Logger) log(level LogLevel, msg string, fields map[string]any) {
	if levelOrder[level] < levelOrder[l.level] {
		return
	}

	entry := logEntry{
		Timestamp: l.now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   msg,
		Fields:    l.redactor.RedactFields(fields),
	}

	var output string
	if l.format == FormatJSON {
		output = formatJSON(entry)
	} else {
		output = formatHuman(entry)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, output)
}

func formatJSON(entry logEntry) string {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf(`{"timestamp":%q,"level":"error","message":"failed to marshal log entry: %s"}`+"\n",
			entry.Timestamp, err.Error())
	}
	return string(data) + "\n"
}

func formatHuman(entry logEntry) string {
	var output strings.Builder
	fmt.Fprintf(&output, "[%s] %s: %s", entry.Timestamp, entry.Level, entry.Message)

	// Sorted for stable output
	for _, k := range slices.Sorted(maps.Keys(entry.Fields)) {
		fmt.Fprintf(&output, " %s=%v", k, entry.Fields[k])
	}

	output.WriteString("\n")
	return output.String()
}

func mergeFields(fields ...map[string]any) map[string]any {
	if len(fields) == 0 {
		return nil
	}

	merged := make(map[string]any)
	for _, f := range fields {
		maps.Copy(merged, f)
	}

	return merged
}

// WithFields creates a logger that attaches fields to every entry.
func (l *Logger) WithFields(fields map[string]any) *ContextLogger {
	return &ContextLogger{
		logger: l,
		fields: fields,
	}
}

// ContextLogger wraps a Logger with context-specific fields.
type ContextLogger struct {
	logger *Logger
	fields map[string]any
}

func (cl *ContextLogger) merge(fields []map[string]any) map[string]any {
	return mergeFields(append([]map[string]any{cl.fields}, fields...)...)
}

// Debug logs a debug-level message with context fields.
func (cl *ContextLogger) Debug(msg string, fields ...map[string]any) {
	cl.logger.Debug(msg, cl.merge(fields))
}

// Info logs an info-level message with context fields.
func (cl *ContextLogger) Info(msg string, fields ...map[string]any) {
	cl.logger.Info(msg, cl.merge(fields))
}

// Warn logs a warn-level message with context fields.
func (cl *ContextLogger) Warn(msg string, fields ...map[string]any) {
	cl.logger.Warn(msg, cl.merge(fields))
}

// Error logs an error-level message with context fields.
func (cl *ContextLogger) Error(msg string, fields ...map[string]any) {
	cl.logger.Error(msg, cl.merge(fields))
}

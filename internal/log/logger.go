// Package log wraps slog with a component attribute for the CLI.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Common attribute keys.
const (
	FieldComponent = "component"
	FieldDir       = "dir"
	FieldPath      = "path"
	FieldCount     = "count"
	FieldVisible   = "visible"
	FieldTotal     = "total"
	FieldError     = "error"
)

// Component names.
const (
	ComponentImport  = "import"
	ComponentExport  = "export"
	ComponentStorage = "storage"
)

// Logger is a slog.Logger bound to a component.
type Logger struct {
	*slog.Logger
}

// ParseLevel maps a config level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// New creates a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler)}
}

// WithComponent returns a logger that tags every record with component.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With(FieldComponent, component)}
}

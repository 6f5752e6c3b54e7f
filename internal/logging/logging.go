// Package logging builds the process logger. Output goes to stderr or a
// file, as text or JSON, with a level that can be adjusted while the
// process runs.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options selects the logger's output, format, and starting level.
type Options struct {
	Level  string // debug, info, warn, error; empty means info
	Format string // text or json; empty means text
	Path   string // log file path; empty logs to stderr
}

// Logger bundles the slog handle with its adjustable level and the
// underlying file, if any.
type Logger struct {
	*slog.Logger

	level   *slog.LevelVar
	closeFn func() error
}

// New builds a logger from opts.
func New(opts Options) (*Logger, error) {
	level := new(slog.LevelVar)
	parsed, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	level.Set(parsed)

	var w io.Writer = os.Stderr
	closeFn := func() error { return nil }
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, fmt.Errorf("logging: create log directory: %w", err)
		}
		file, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("logging: open log file: %w", err)
		}
		w = file
		closeFn = file.Close
	}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "text":
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	default:
		closeFn()
		return nil, fmt.Errorf("logging: unknown format %q", opts.Format)
	}

	return &Logger{Logger: slog.New(handler), level: level, closeFn: closeFn}, nil
}

// SetLevel adjusts the logger's level by name. Config reload uses this
// without rebuilding the handler.
func (l *Logger) SetLevel(name string) error {
	parsed, err := ParseLevel(name)
	if err != nil {
		return err
	}
	l.level.Set(parsed)
	return nil
}

// Close releases the log file, if one is open.
func (l *Logger) Close() error {
	return l.closeFn()
}

// ParseLevel maps a level name to its slog level. Empty means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("logging: unknown level %q", name)
	}
}

// Nop returns a logger that discards everything. Tests use it.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

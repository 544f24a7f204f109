// Package log wraps log/slog with a per-component attribute so every
// line can be traced back to the subsystem that emitted it.
package log

import (
	"log/slog"
	"os"
	"strings"
)

// Logger is a slog.Logger that subsystems derive component-tagged
// children from.
type Logger struct {
	*slog.Logger
}

// New builds a text-handler logger at the given level and sets it as
// the process default.
func New(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return &Logger{Logger: logger}
}

// WithComponent returns a logger tagged with a subsystem name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With("component", component)}
}

// ParseLevel maps a config string to a slog level, defaulting to Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

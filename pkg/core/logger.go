package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// DefaultLogger implements Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() Logger {
	return &DefaultLogger{}
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}

// SlogLogger adapts a *slog.Logger to Logger. Messages are logged at Info
// with trailing newlines trimmed.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps l; a nil l falls back to slog.Default()
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{logger: l}
}

func (sl *SlogLogger) Printf(format string, args ...interface{}) {
	if !sl.logger.Enabled(context.Background(), slog.LevelInfo) {
		return
	}
	sl.logger.Info(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

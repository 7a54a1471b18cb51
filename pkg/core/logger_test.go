package core

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	l.Printf("pass %d done\n", 3)

	out := buf.String()
	if !strings.Contains(out, "pass 3 done") {
		t.Errorf("Expected message in output, got %q", out)
	}
	if strings.Contains(out, "done\\n") {
		t.Errorf("Expected trailing newline to be trimmed, got %q", out)
	}
}

func TestSlogLoggerDisabledLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	l.Printf("ignored")

	if buf.Len() != 0 {
		t.Errorf("Expected no output below configured level, got %q", buf.String())
	}
}

package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
// and echoing them to the server log
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	server      core.Logger
}

// NewWebLogger creates a new web logger for a specific render. server may be
// nil, in which case messages only go to the console channel.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage, server core.Logger) *WebLogger {
	if server == nil {
		server = core.NopLogger{}
	}
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
		server:      server,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	wl.server.Printf("[%s] %s", wl.renderID, message)

	if wl.consoleChan == nil {
		return
	}

	// Non-blocking: a slow client drops console lines rather than stalling the renderer
	select {
	case wl.consoleChan <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     messageLevel(message),
	}:
	default:
	}
}

// messageLevel classifies a log line by its leading word
func messageLevel(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.HasPrefix(lower, "error"):
		return "error"
	case strings.HasPrefix(lower, "warning"), strings.Contains(lower, "unavailable"):
		return "warning"
	default:
		return "info"
	}
}

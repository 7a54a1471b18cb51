package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/df07/go-interactive-pathtracer/pkg/renderer"
	"github.com/df07/go-interactive-pathtracer/pkg/scene"
)

// PassUpdate is streamed after every accumulated frame
type PassUpdate struct {
	PassNumber     int    `json:"passNumber"`
	TotalPasses    int    `json:"totalPasses"`
	ImageData      string `json:"imageData"` // Base64 encoded PNG of the front buffer
	Stats          Stats  `json:"stats"`
	IsComplete     bool   `json:"isComplete"`
	ElapsedMs      int64  `json:"elapsedMs"`
	PassMs         int64  `json:"passMs"`
	PrimitiveCount int    `json:"primitiveCount"`
}

// handleRender streams progressive frames of a scene via SSE. All writes to w
// happen on the handler goroutine.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		sendSSEEvent(w, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	logger := NewWebLogger(renderID, consoleChan, s.logger)

	sceneObj, err := scene.Build(req.Scene, s.environment)
	if err != nil {
		sendSSEEvent(w, "error", err.Error())
		return
	}

	config := renderer.Config{
		TileWidth:  req.TileSize,
		TileHeight: req.TileSize,
		NumWorkers: req.Workers,
		MaxBounces: req.MaxBounces,
	}
	rc := renderer.NewRendererContext(sceneObj, req.Width, req.Height, config, logger)

	startTime := time.Now()
	passChan, errChan := rc.RenderProgressive(ctx, req.MaxPasses)

	completed := s.handleRenderingEvents(ctx, w, consoleChan, passChan, errChan, req, sceneObj.PrimitiveCount(), startTime)

	// The render goroutine owns rc until its channels close
	cancel()
	for range passChan {
	}
	rc.Close()

	if completed {
		s.drainConsole(w, consoleChan)
		sendSSEEvent(w, "complete", "Rendering completed")
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// handleRenderingEvents forwards pass results and console lines until the
// render finishes or the client disconnects. It reports whether every pass
// was delivered.
func (s *Server) handleRenderingEvents(ctx context.Context, w http.ResponseWriter, consoleChan <-chan ConsoleMessage,
	passChan <-chan renderer.PassResult, errChan <-chan error, req *RenderRequest, primitiveCount int, startTime time.Time) bool {
	failed := false
	for passChan != nil || errChan != nil {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)

		case result, ok := <-passChan:
			if !ok {
				passChan = nil
				continue
			}
			if err := s.handlePassComplete(w, result, req, primitiveCount, startTime); err != nil {
				s.logger.Printf("Error sending pass %d: %v\n", result.PassNumber, err)
				return false
			}

		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			failed = true
			if ctx.Err() == nil {
				sendSSEEvent(w, "error", fmt.Sprintf("Render error: %v", err))
			}

		case <-ctx.Done():
			return false
		}
	}
	return !failed
}

// handlePassComplete encodes the front buffer snapshot and sends it
func (s *Server) handlePassComplete(w http.ResponseWriter, result renderer.PassResult, req *RenderRequest, primitiveCount int, startTime time.Time) error {
	imageData, err := imageToBase64PNG(result.Image)
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	update := PassUpdate{
		PassNumber:     result.PassNumber,
		TotalPasses:    req.MaxPasses,
		ImageData:      imageData,
		Stats:          newStats(result.Stats),
		IsComplete:     result.IsLast,
		ElapsedMs:      time.Since(startTime).Milliseconds(),
		PassMs:         result.Duration.Milliseconds(),
		PrimitiveCount: primitiveCount,
	}

	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return sendSSEEvent(w, "passComplete", string(data))
}

// sendConsoleMessage forwards one log line to the client console
func (s *Server) sendConsoleMessage(w http.ResponseWriter, msg ConsoleMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Printf("Error marshaling console message: %v\n", err)
		return
	}
	sendSSEEvent(w, "console", string(data))
}

// drainConsole sends console lines logged after the last pass
func (s *Server) drainConsole(w http.ResponseWriter, consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)
		default:
			return
		}
	}
}

package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/integrator"
	"github.com/df07/go-interactive-pathtracer/pkg/renderer"
	"github.com/df07/go-interactive-pathtracer/pkg/scene"
)

const defaultScene = "test"

// Request limits shared by parsing and /api/scene-config
const (
	minImageSize = 16
	maxImageSize = 2000
	maxPasses    = 10000
	maxBounces   = 64
	maxTileSize  = 256
)

// Server handles web requests for the live preview
type Server struct {
	port        int
	staticDir   string
	environment scene.Environment
	logger      core.Logger
}

// NewServer creates a new web server. Scenes are lit by env, and server
// activity is logged to logger.
func NewServer(port int, staticDir string, env scene.Environment, logger core.Logger) *Server {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Server{
		port:        port,
		staticDir:   staticDir,
		environment: env,
		logger:      logger,
	}
}

// RenderRequest represents a render or inspect request from the client
type RenderRequest struct {
	Scene      string `json:"scene"`      // Scene name (see /api/scenes)
	Width      int    `json:"width"`      // Image width
	Height     int    `json:"height"`     // Image height
	MaxPasses  int    `json:"maxPasses"`  // Number of accumulated frames to stream
	Workers    int    `json:"workers"`    // Render workers (0 = logical core count)
	TileSize   int    `json:"tileSize"`   // Square tile edge in pixels
	MaxBounces int    `json:"maxBounces"` // Path length cap
}

// Stats represents render statistics
type Stats struct {
	Frame          uint32  `json:"frame"`
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int64   `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MinSamples     int     `json:"minSamples"`
	MaxSamplesUsed int     `json:"maxSamplesUsed"`
	AverageLum     float64 `json:"averageLuminance"`
}

func newStats(rs renderer.RenderStats) Stats {
	return Stats{
		Frame:          rs.Frame,
		TotalPixels:    rs.TotalPixels,
		TotalSamples:   int64(rs.TotalSamples),
		AverageSamples: rs.AverageSamples,
		MinSamples:     rs.MinSamples,
		MaxSamplesUsed: rs.MaxSamplesUsed,
		AverageLum:     rs.AverageLum,
	}
}

// Handler returns the routes served by the preview server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	}
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Printf("Starting web server on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(scene.ListScenes())
}

// handleSceneConfig returns the default render configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = defaultScene
	}

	sceneObj, err := scene.Build(sceneName, s.environment)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	config := renderer.DefaultConfig()
	response := map[string]interface{}{
		"scene":          sceneName,
		"primitiveCount": sceneObj.PrimitiveCount(),
		"defaults": map[string]interface{}{
			"tileSize":   config.TileWidth,
			"maxBounces": config.MaxBounces,
			"workers":    renderer.LogicalCoreCount(),
		},
		"limits": map[string]interface{}{
			"width":      map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":     map[string]int{"min": minImageSize, "max": maxImageSize},
			"maxPasses":  map[string]int{"min": 1, "max": maxPasses},
			"maxBounces": map[string]int{"min": 1, "max": maxBounces},
			"tileSize":   map[string]int{"min": 1, "max": maxTileSize},
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// parseCommonSceneParams parses the scene and image size shared by render and inspect
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()
	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = defaultScene
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, minImageSize, maxImageSize); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 225, minImageSize, maxImageSize); err != nil {
		return err
	}
	return nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	var err error
	if req.MaxPasses, err = parseIntParam(query, "maxPasses", 64, 1, maxPasses); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", 0, 0, 1024); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(query, "tileSize", renderer.DefaultTileSize, 1, maxTileSize); err != nil {
		return nil, err
	}
	if req.MaxBounces, err = parseIntParam(query, "maxBounces", integrator.DefaultMaxBounces, 1, maxBounces); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 800*600 && req.MaxPasses > 1000 {
		s.logger.Printf("Render warning: large image with many passes may render slowly\n")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEEvent writes one SSE event and flushes it to the client
func sendSSEEvent(w http.ResponseWriter, event, data string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming not supported")
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

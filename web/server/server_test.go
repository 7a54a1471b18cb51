package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/df07/go-interactive-pathtracer/pkg/scene"
)

func newTestServer() *Server {
	return NewServer(0, "", scene.NewSkyEnvironment(scene.DefaultSky), nil)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

// sseEvents splits an SSE body into (event, data) pairs
func sseEvents(body string) [][2]string {
	var events [][2]string
	for _, block := range strings.Split(body, "\n\n") {
		var event, data string
		for _, line := range strings.Split(block, "\n") {
			if v, ok := strings.CutPrefix(line, "event: "); ok {
				event = v
			} else if v, ok := strings.CutPrefix(line, "data: "); ok {
				data = v
			}
		}
		if event != "" {
			events = append(events, [2]string{event, data})
		}
	}
	return events
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("Unexpected health body: %s", rec.Body.String())
	}
}

func TestScenes(t *testing.T) {
	rec := get(t, newTestServer(), "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var scenes []scene.SceneInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &scenes); err != nil {
		t.Fatalf("Failed to decode scene list: %v", err)
	}
	if len(scenes) != len(scene.Names()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.Names()), len(scenes))
	}
}

func TestSceneConfig(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
	}{
		{"default scene", "/api/scene-config", http.StatusOK},
		{"plane scene", "/api/scene-config?scene=plane", http.StatusOK},
		{"unknown scene", "/api/scene-config?scene=nonexistent", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newTestServer(), tt.target)
			if rec.Code != tt.status {
				t.Errorf("Expected status %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    int
		wantErr bool
	}{
		{"default", "", 7, false},
		{"valid", "n=12", 12, false},
		{"not a number", "n=abc", 0, true},
		{"below min", "n=0", 0, true},
		{"above max", "n=101", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			got, err := parseIntParam(r.URL.Query(), "n", 7, 1, 100)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name     string
		target   string
		status   int
		hit      bool
		geometry string
	}{
		{"ground below horizon", "/api/inspect?scene=plane&width=16&height=16&x=8&y=15", http.StatusOK, true, "plane"},
		{"sky above horizon", "/api/inspect?scene=plane&width=16&height=16&x=8&y=0", http.StatusOK, false, ""},
		{"missing x", "/api/inspect?scene=plane&width=16&height=16&y=0", http.StatusBadRequest, false, ""},
		{"out of bounds", "/api/inspect?scene=plane&width=16&height=16&x=16&y=0", http.StatusBadRequest, false, ""},
		{"unknown scene", "/api/inspect?scene=nonexistent&x=0&y=0", http.StatusBadRequest, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			if rec.Code != tt.status {
				t.Fatalf("Expected status %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			if tt.status != http.StatusOK {
				return
			}

			var resp InspectResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Hit != tt.hit {
				t.Fatalf("Expected hit=%v, got %v", tt.hit, resp.Hit)
			}
			if !tt.hit {
				return
			}
			if resp.GeometryType != tt.geometry {
				t.Errorf("Expected geometry %s, got %s", tt.geometry, resp.GeometryType)
			}
			if resp.MaterialType != "diffuse" {
				t.Errorf("Expected diffuse material, got %s", resp.MaterialType)
			}
			if !resp.FrontFace {
				t.Error("Expected ground to be hit from the front")
			}
			if resp.Point[1] > 1e-3 || resp.Point[1] < -1e-3 {
				t.Errorf("Expected hit point on y=0, got %v", resp.Point)
			}
		})
	}
}

func TestRenderStreamsPasses(t *testing.T) {
	rec := get(t, newTestServer(), "/api/render?scene=plane&width=16&height=16&maxPasses=3&workers=2&tileSize=8")

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected SSE content type, got %s", ct)
	}

	var passes []PassUpdate
	var last string
	for _, ev := range sseEvents(rec.Body.String()) {
		last = ev[0]
		switch ev[0] {
		case "passComplete":
			var update PassUpdate
			if err := json.Unmarshal([]byte(ev[1]), &update); err != nil {
				t.Fatalf("Failed to decode pass update: %v", err)
			}
			passes = append(passes, update)
		case "error":
			t.Fatalf("Unexpected error event: %s", ev[1])
		}
	}

	if len(passes) != 3 {
		t.Fatalf("Expected 3 pass updates, got %d", len(passes))
	}
	if last != "complete" {
		t.Errorf("Expected stream to end with complete, got %s", last)
	}

	for i, update := range passes {
		if update.PassNumber != i+1 {
			t.Errorf("Update %d: expected pass %d, got %d", i, i+1, update.PassNumber)
		}
		if update.ImageData == "" {
			t.Errorf("Update %d: missing image data", i)
		}
		if update.PrimitiveCount != 1 {
			t.Errorf("Update %d: expected 1 primitive, got %d", i, update.PrimitiveCount)
		}
		if update.Stats.TotalPixels != 256 {
			t.Errorf("Update %d: expected 256 pixels, got %d", i, update.Stats.TotalPixels)
		}
		if update.Stats.MinSamples != i+1 {
			t.Errorf("Update %d: expected %d samples per pixel, got %d", i, i+1, update.Stats.MinSamples)
		}
	}
	if !passes[2].IsComplete {
		t.Error("Expected final update to be marked complete")
	}
}

func TestRenderInvalidRequest(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"bad width", "/api/render?width=abc"},
		{"unknown scene", "/api/render?scene=nonexistent&width=16&height=16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := sseEvents(get(t, newTestServer(), tt.target).Body.String())
			if len(events) != 1 || events[0][0] != "error" {
				t.Errorf("Expected a single error event, got %v", events)
			}
		})
	}
}

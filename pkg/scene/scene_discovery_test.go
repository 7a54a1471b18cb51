package scene

import (
	"errors"
	"testing"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
)

func TestBuildRegisteredScenes(t *testing.T) {
	env := NewSkyEnvironment(DefaultSky)

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Build(name, env)
			if err != nil {
				t.Fatalf("Build(%q) failed: %v", name, err)
			}
			if s.PrimitiveCount() == 0 {
				t.Error("Expected scene to contain primitives")
			}
			if s.Camera != s.PendingCamera {
				t.Error("Expected built scene to start with a committed camera")
			}
			if s.Camera.Forward.Len() < 0.99 {
				t.Error("Expected camera to be aimed")
			}

			// Every primitive must reference a real material
			for i := 1; i < s.PlaneCount; i++ {
				if id := s.Planes[i].Material; id == 0 || int(id) >= s.MaterialCount {
					t.Errorf("Plane %d has invalid material %d", i, id)
				}
			}
			for i := 1; i < s.SphereCount; i++ {
				if id := s.Spheres[i].Material; id == 0 || int(id) >= s.MaterialCount {
					t.Errorf("Sphere %d has invalid material %d", i, id)
				}
			}
		})
	}
}

func TestBuildUnknownScene(t *testing.T) {
	_, err := Build("cornell", NewSkyEnvironment(DefaultSky))
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestListScenesSorted(t *testing.T) {
	scenes := ListScenes()
	if len(scenes) != 3 {
		t.Fatalf("Expected 3 built-in scenes, got %d", len(scenes))
	}
	for i := 1; i < len(scenes); i++ {
		if scenes[i-1].ID >= scenes[i].ID {
			t.Errorf("Scenes not sorted: %q before %q", scenes[i-1].ID, scenes[i].ID)
		}
	}
	for _, info := range scenes {
		if info.DisplayName == "" {
			t.Errorf("Scene %q has no display name", info.ID)
		}
	}
}

func TestOklchToRGBInRange(t *testing.T) {
	for hue := float32(0); hue < 360; hue += 15 {
		c := oklchToRGB(0.7, 0.15, hue)
		for _, v := range c {
			if v < 0 || v > 1 {
				t.Fatalf("oklchToRGB(hue=%f) out of range: %v", hue, c)
			}
		}
		if core.Max3(c) == 0 {
			t.Errorf("oklchToRGB(hue=%f) is black", hue)
		}
	}
}

package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned by Build for names that are not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, accepted by Build
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

type registration struct {
	info  SceneInfo
	build func(Environment) *Scene
}

var registry = map[string]registration{
	"test": {
		info: SceneInfo{
			ID:          "test",
			DisplayName: "Test Scene",
			Description: "Glass-coated sphere, mirror sphere and a spherical ground",
		},
		build: NewTestScene,
	},
	"plane": {
		info: SceneInfo{
			ID:          "plane",
			DisplayName: "Plane",
			Description: "Single diffuse plane under a directional light",
		},
		build: NewPlaneScene,
	},
	"spheres": {
		info: SceneInfo{
			ID:          "spheres",
			DisplayName: "Sphere Grid",
			Description: "Grid of diffuse, mirror and dielectric spheres with an emissive lamp",
		},
		build: NewSphereGridScene,
	},
}

// Build creates the named scene lit by env
func Build(name string, env Environment) (*Scene, error) {
	r, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return r.build(env), nil
}

// ListScenes returns every built-in scene sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for _, r := range registry {
		scenes = append(scenes, r.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Names returns the IDs of every built-in scene, sorted
func Names() []string {
	scenes := ListScenes()
	names := make([]string, len(scenes))
	for i, info := range scenes {
		names[i] = info.ID
	}
	return names
}

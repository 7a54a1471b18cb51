package scene

import (
	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/material"
)

// NewPlaneScene creates a single diffuse ground plane under a directional
// light, seen from (0, 2, -5) looking at the origin
func NewPlaneScene(env Environment) *Scene {
	s := New()
	s.Environment = env

	s.PendingCamera.AimAt(core.NewVec3(0, 2, -5), core.NewVec3(0, 0, 0))
	s.Camera = s.PendingCamera

	s.SetDirectionalLight(core.NewVec3(0, 1, -0.5), core.NewVec3(4, 4, 4))

	ground := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddPlane(core.NewVec3(0, 1, 0), 0, ground)

	return s
}

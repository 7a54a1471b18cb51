package scene

import (
	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/material"
)

// NewTestScene creates the showcase scene: a glass-coated sphere, a tinted
// mirror sphere and a huge green sphere standing in for the ground
func NewTestScene(env Environment) *Scene {
	s := New()
	s.Environment = env

	s.PendingCamera.AimAt(core.NewVec3(0, 2, -5), core.NewVec3(0, 1, 0))
	s.Camera = s.PendingCamera

	// Soft sun so the scene stays readable without an environment map
	s.SetDirectionalLight(core.NewVec3(0.4, 1, -0.6), core.NewVec3(1.5, 1.4, 1.3))

	ground := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.1, 1, 0.1)))
	coated := s.AddMaterial(material.NewDielectric(core.NewVec3(1, 1, 1), 1.5))
	mirror := s.AddMaterial(material.NewMirror(core.NewVec3(1, 0.5, 0.2)))

	s.AddSphere(core.NewVec3(5, 5, 5.5), 4, coated)
	s.AddSphere(core.NewVec3(5, 3, 0), 2, mirror)
	s.AddSphere(core.NewVec3(0, -100, 0), 100, ground)

	return s
}

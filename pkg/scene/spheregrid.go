package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/material"
)

const sphereGridSize = 6

// oklchToRGB converts OKLCH color values to linear RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float32) mgl32.Vec3 {
	hRad := mgl32.DegToRad(h)

	// OKLCH to OKLAB
	a := c * math32.Cos(hRad)
	b := c * math32.Sin(hRad)

	// OKLAB to LMS, cubed
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(
		mgl32.Clamp(r, 0, 1),
		mgl32.Clamp(g, 0, 1),
		mgl32.Clamp(blue, 0, 1),
	)
}

// NewSphereGridScene creates a grid of spheres cycling through every
// material kind on a ground plane, with one emissive sphere in the middle
func NewSphereGridScene(env Environment) *Scene {
	s := New()
	s.Environment = env

	center := float32(sphereGridSize-1) / 2
	s.PendingCamera.AimAt(core.NewVec3(center, 4, -7), core.NewVec3(center, 0.5, center))
	s.Camera = s.PendingCamera

	s.SetDirectionalLight(core.NewVec3(-0.5, 1, -0.3), core.NewVec3(2, 1.9, 1.8))

	ground := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.6, 0.6, 0.6)))
	s.AddPlane(core.NewVec3(0, 1, 0), 0, ground)

	for i := 0; i < sphereGridSize; i++ {
		for j := 0; j < sphereGridSize; j++ {
			index := i*sphereGridSize + j
			hue := 360 * float32(index) / (sphereGridSize * sphereGridSize)
			albedo := oklchToRGB(0.7, 0.15, hue)

			var m material.Material
			switch index % 3 {
			case 0:
				m = material.NewDiffuse(albedo)
			case 1:
				m = material.NewMirror(albedo)
			default:
				m = material.NewDielectric(albedo, 1.5)
			}
			s.AddSphere(core.NewVec3(float32(i), 0.4, float32(j)), 0.4, s.AddMaterial(m))
		}
	}

	lamp := s.AddMaterial(material.NewEmissive(core.NewVec3(1, 1, 1), core.NewVec3(6, 5, 4)))
	s.AddSphere(core.NewVec3(center, 1.6, center), 0.5, lamp)

	return s
}

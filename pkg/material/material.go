package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
)

// Kind selects how a surface scatters light
type Kind uint8

const (
	// Diffuse surfaces scatter into a cosine-weighted hemisphere (albedo/π BRDF)
	Diffuse Kind = iota
	// Mirror surfaces reflect perfectly and tint by their albedo
	Mirror
	// Dielectric surfaces split between a Fresnel-weighted specular coat and a
	// diffuse base, like varnished or plastic surfaces
	Dielectric
)

func (k Kind) String() string {
	switch k {
	case Diffuse:
		return "diffuse"
	case Mirror:
		return "mirror"
	case Dielectric:
		return "dielectric"
	default:
		return "unknown"
	}
}

// Material describes a surface. Materials are plain values stored in the
// scene's material table and are never mutated while rendering.
type Material struct {
	Kind     Kind
	Albedo   mgl32.Vec3
	Emissive mgl32.Vec3
	IOR      float32 // Index of refraction, only used by Dielectric
}

// NewDiffuse creates a lambertian material
func NewDiffuse(albedo mgl32.Vec3) Material {
	return Material{Kind: Diffuse, Albedo: albedo, IOR: 1}
}

// NewMirror creates a perfect mirror tinted by albedo
func NewMirror(albedo mgl32.Vec3) Material {
	return Material{Kind: Mirror, Albedo: albedo, IOR: 1}
}

// NewDielectric creates a coated material with the given index of refraction
// over a diffuse base of the given albedo
func NewDielectric(albedo mgl32.Vec3, ior float32) Material {
	if ior <= 0 {
		ior = 1
	}
	return Material{Kind: Dielectric, Albedo: albedo, IOR: ior}
}

// NewEmissive creates a diffuse material that also emits light
func NewEmissive(albedo, emission mgl32.Vec3) Material {
	return Material{Kind: Diffuse, Albedo: albedo, Emissive: emission, IOR: 1}
}

// IsEmissive reports whether the material emits any light
func (m Material) IsEmissive() bool {
	return core.Max3(m.Emissive) > 0
}

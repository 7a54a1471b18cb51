package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the smallest accepted hit distance and the offset applied to
// the origin of every secondary ray
const Epsilon float32 = 0.001

// MaxDistance is the initial extent of closest-hit and directional shadow queries
const MaxDistance float32 = math32.MaxFloat32

// NewVec3 creates a new vector
func NewVec3(x, y, z float32) mgl32.Vec3 {
	return mgl32.Vec3{x, y, z}
}

// MultiplyVec returns the component-wise product of two vectors
func MultiplyVec(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Max3 returns the largest component of v
func Max3(v mgl32.Vec3) float32 {
	return math32.Max(v[0], math32.Max(v[1], v[2]))
}

// NormalizeOrZero returns v scaled to unit length, or the zero vector when v
// is too short to be normalized safely
func NormalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	lenSq := v.LenSqr()
	if lenSq < 1e-20 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / math32.Sqrt(lenSq))
}

// IsFinite reports whether every component of v is neither NaN nor infinite
func IsFinite(v mgl32.Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Luminance returns the perceptual luminance of an RGB color
func Luminance(v mgl32.Vec3) float32 {
	return 0.299*v[0] + 0.587*v[1] + 0.114*v[2]
}

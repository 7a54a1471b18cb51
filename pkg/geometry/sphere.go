package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
)

// IntersectSphere tests a ray with unit-length dir against a sphere.
// The near root is used when it is at least core.Epsilon away, otherwise the
// far root, so rays starting inside the sphere hit its far side. On a hit at
// distance t in [core.Epsilon, *tMax) it stores t in *tMax and returns true.
func IntersectSphere(origin, dir, center mgl32.Vec3, radius float32, tMax *float32) bool {
	rel := origin.Sub(center)

	// Quadratic with a = 1: t² + 2bt + c = 0
	b := dir.Dot(rel)
	c := rel.Dot(rel) - radius*radius
	discriminant := b*b - c
	if discriminant < 0 {
		return false
	}

	root := math32.Sqrt(discriminant)
	t := -b - root
	if t < core.Epsilon {
		t = -b + root
	}

	if t >= core.Epsilon && t < *tMax {
		*tMax = t
		return true
	}
	return false
}

// SphereNormal returns the outward unit normal of a sphere at point p
func SphereNormal(p, center mgl32.Vec3) mgl32.Vec3 {
	return core.NormalizeOrZero(p.Sub(center))
}

package geometry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
)

// parallelThreshold rejects rays whose direction is (nearly) parallel to a plane
const parallelThreshold = 1e-6

// IntersectPlane tests a ray against the plane {p : normal·p = offset}.
// Planes are one-sided: only rays travelling against the normal can hit.
// On a hit at distance t in [core.Epsilon, *tMax) it stores t in *tMax and
// returns true; otherwise *tMax is left untouched.
func IntersectPlane(origin, dir, normal mgl32.Vec3, offset float32, tMax *float32) bool {
	denominator := normal.Dot(dir)

	// Parallel rays and rays reaching the back face never hit
	if denominator > -parallelThreshold {
		return false
	}

	t := (offset - normal.Dot(origin)) / denominator
	if t >= core.Epsilon && t < *tMax {
		*tMax = t
		return true
	}
	return false
}

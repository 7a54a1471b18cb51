package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-interactive-pathtracer/pkg/geometry"
)

// PrimitiveKind names the table a hit primitive lives in
type PrimitiveKind uint8

const (
	PlanePrimitive PrimitiveKind = iota + 1
	SpherePrimitive
)

func (k PrimitiveKind) String() string {
	switch k {
	case PlanePrimitive:
		return "plane"
	case SpherePrimitive:
		return "sphere"
	default:
		return "none"
	}
}

// Hit describes the closest surface found by Trace. Normal is the
// geometric normal and is not flipped toward the ray. Index is the slot in
// the Planes or Spheres table selected by Primitive.
type Hit struct {
	Material  MaterialID
	Normal    mgl32.Vec3
	Primitive PrimitiveKind
	Index     int
}

// Trace finds the closest surface along the ray within [Epsilon, *t).
// On a hit *t holds the hit distance. dir must be unit length.
func (s *Scene) Trace(origin, dir mgl32.Vec3, t *float32) (Hit, bool) {
	return s.traceScene(origin, dir, t, false)
}

// Occluded reports whether any surface lies along the ray within
// [Epsilon, maxT)
func (s *Scene) Occluded(origin, dir mgl32.Vec3, maxT float32) bool {
	t := maxT
	_, hit := s.traceScene(origin, dir, &t, true)
	return hit
}

// traceScene scans planes then spheres, skipping the reserved slot 0. With
// anyHit set it returns on the first intersection without filling in the Hit.
func (s *Scene) traceScene(origin, dir mgl32.Vec3, t *float32, anyHit bool) (Hit, bool) {
	var hit Hit
	found := false

	for i := 1; i < s.PlaneCount; i++ {
		plane := &s.Planes[i]
		if geometry.IntersectPlane(origin, dir, plane.Normal, plane.Offset, t) {
			if anyHit {
				return hit, true
			}
			found = true
			hit.Material = plane.Material
			hit.Normal = plane.Normal
			hit.Primitive = PlanePrimitive
			hit.Index = i
		}
	}

	closest := 0
	for i := 1; i < s.SphereCount; i++ {
		sphere := &s.Spheres[i]
		if geometry.IntersectSphere(origin, dir, sphere.Center, sphere.Radius, t) {
			if anyHit {
				return hit, true
			}
			found = true
			closest = i
		}
	}

	if closest != 0 {
		sphere := &s.Spheres[closest]
		hit.Material = sphere.Material
		hit.Normal = geometry.SphereNormal(origin.Add(dir.Mul(*t)), sphere.Center)
		hit.Primitive = SpherePrimitive
		hit.Index = closest
	}
	return hit, found
}

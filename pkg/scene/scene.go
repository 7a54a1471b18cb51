package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-interactive-pathtracer/pkg/material"
)

// Capacity is the number of slots in each scene table, including the
// reserved slot at index 0
const Capacity = 256

// MaterialID indexes Scene.Materials. The zero ID is the null material and
// doubles as "no hit".
type MaterialID uint32

// Plane is the set of points p with Normal·p = Offset. Planes are one-sided:
// only rays travelling against Normal hit them.
type Plane struct {
	Normal   mgl32.Vec3
	Offset   float32
	Material MaterialID
}

// Sphere is a solid sphere
type Sphere struct {
	Center   mgl32.Vec3
	Radius   float32
	Material MaterialID
}

// DirectionalLight is an infinitely distant light. Direction is the unit
// vector pointing from surfaces toward the light.
type DirectionalLight struct {
	Direction mgl32.Vec3
	Emission  mgl32.Vec3
}

// CapacityError is the panic value raised when a scene table is full
type CapacityError struct {
	Table    string
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("scene: %s table is full (capacity %d)", e.Table, e.Capacity)
}

// Scene holds fixed-capacity tables of primitives and materials. Slot 0 of
// every table is reserved and never hit-tested.
//
// A scene is built before the first pass and then only read by render
// workers. The one exception is Camera, which the renderer commits from
// PendingCamera between passes while every worker is parked.
type Scene struct {
	Planes        [Capacity]Plane
	Spheres       [Capacity]Sphere
	Materials     [Capacity]material.Material
	PlaneCount    int
	SphereCount   int
	MaterialCount int

	Camera        Camera // committed camera, read by render workers
	PendingCamera Camera // staged by input handling

	Light       DirectionalLight
	Environment Environment
}

// New creates an empty scene lit only by the default sky
func New() *Scene {
	return &Scene{
		PlaneCount:    1,
		SphereCount:   1,
		MaterialCount: 1,
		Environment:   NewSkyEnvironment(DefaultSky),
	}
}

// AddMaterial stores m and returns its ID. It panics with *CapacityError
// when the table is full.
func (s *Scene) AddMaterial(m material.Material) MaterialID {
	if s.MaterialCount >= Capacity {
		panic(&CapacityError{Table: "material", Capacity: Capacity})
	}
	id := MaterialID(s.MaterialCount)
	s.Materials[id] = m
	s.MaterialCount++
	return id
}

// AddPlane adds a plane. The normal is normalized and the offset is taken
// along the normalized normal.
func (s *Scene) AddPlane(normal mgl32.Vec3, offset float32, m MaterialID) {
	if s.PlaneCount >= Capacity {
		panic(&CapacityError{Table: "plane", Capacity: Capacity})
	}
	length := normal.Len()
	s.Planes[s.PlaneCount] = Plane{Normal: normal.Mul(1 / length), Offset: offset / length, Material: m}
	s.PlaneCount++
}

// AddSphere adds a sphere
func (s *Scene) AddSphere(center mgl32.Vec3, radius float32, m MaterialID) {
	if s.SphereCount >= Capacity {
		panic(&CapacityError{Table: "sphere", Capacity: Capacity})
	}
	s.Spheres[s.SphereCount] = Sphere{Center: center, Radius: radius, Material: m}
	s.SphereCount++
}

// Material returns the material stored under id
func (s *Scene) Material(id MaterialID) *material.Material {
	return &s.Materials[id]
}

// SetDirectionalLight sets the scene's directional light; direction points
// toward the light and is normalized here
func (s *Scene) SetDirectionalLight(direction, emission mgl32.Vec3) {
	s.Light = DirectionalLight{Direction: direction.Normalize(), Emission: emission}
}

// HasDirectionalLight reports whether the directional light emits anything
func (s *Scene) HasDirectionalLight() bool {
	return s.Light.Emission != (mgl32.Vec3{})
}

// PrimitiveCount returns the number of hit-testable primitives
func (s *Scene) PrimitiveCount() int {
	return (s.PlaneCount - 1) + (s.SphereCount - 1)
}

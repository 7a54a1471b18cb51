package scene

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/material"
)

func TestNewSceneReservesSlotZero(t *testing.T) {
	s := New()

	if s.PlaneCount != 1 || s.SphereCount != 1 || s.MaterialCount != 1 {
		t.Errorf("Expected counts to start at 1, got planes=%d spheres=%d materials=%d",
			s.PlaneCount, s.SphereCount, s.MaterialCount)
	}

	id := s.AddMaterial(material.NewDiffuse(core.NewVec3(1, 0, 0)))
	if id != 1 {
		t.Errorf("Expected first material ID 1, got %d", id)
	}
	if s.PrimitiveCount() != 0 {
		t.Errorf("Expected no primitives, got %d", s.PrimitiveCount())
	}
}

func TestAddPlaneNormalizes(t *testing.T) {
	s := New()
	s.AddPlane(core.NewVec3(0, 2, 0), 4, 0)

	plane := s.Planes[1]
	if plane.Normal != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Expected unit normal, got %v", plane.Normal)
	}
	if plane.Offset != 2 {
		t.Errorf("Expected offset 2 along the unit normal, got %f", plane.Offset)
	}
}

func TestCapacityPanics(t *testing.T) {
	tests := []struct {
		name  string
		table string
		add   func(s *Scene)
	}{
		{"materials", "material", func(s *Scene) { s.AddMaterial(material.NewDiffuse(core.NewVec3(1, 1, 1))) }},
		{"planes", "plane", func(s *Scene) { s.AddPlane(core.NewVec3(0, 1, 0), 0, 0) }},
		{"spheres", "sphere", func(s *Scene) { s.AddSphere(core.NewVec3(0, 0, 0), 1, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			// Slot 0 is reserved, so Capacity-1 entries fit
			for i := 1; i < Capacity; i++ {
				tt.add(s)
			}

			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("Expected panic when table is full")
				}
				err, ok := r.(error)
				var capErr *CapacityError
				if !ok || !errors.As(err, &capErr) {
					t.Fatalf("Expected *CapacityError, got %v", r)
				}
				if capErr.Table != tt.table || capErr.Capacity != Capacity {
					t.Errorf("Unexpected error contents: %v", capErr)
				}
			}()
			tt.add(s)
		})
	}
}

func TestSetDirectionalLight(t *testing.T) {
	s := New()
	if s.HasDirectionalLight() {
		t.Error("Expected new scene to have no directional light")
	}

	s.SetDirectionalLight(core.NewVec3(0, 2, 0), core.NewVec3(1, 1, 1))
	if s.Light.Direction != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Expected normalized direction, got %v", s.Light.Direction)
	}
	if !s.HasDirectionalLight() {
		t.Error("Expected directional light to be present")
	}
}

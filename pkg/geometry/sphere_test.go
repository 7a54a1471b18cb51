package geometry

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
)

func TestIntersectSphere(t *testing.T) {
	center := core.NewVec3(0, 0, 0)

	tests := []struct {
		name      string
		origin    mgl32.Vec3
		dir       mgl32.Vec3
		radius    float32
		tIn       float32
		expectHit bool
		expectedT float32
	}{
		{
			name:      "head on from outside",
			origin:    core.NewVec3(0, 0, 5),
			dir:       core.NewVec3(0, 0, -1),
			radius:    1,
			tIn:       core.MaxDistance,
			expectHit: true,
			expectedT: 4,
		},
		{
			name:      "from inside takes far root",
			origin:    core.NewVec3(0, 0, 0),
			dir:       core.NewVec3(0, 0, 1),
			radius:    1,
			tIn:       core.MaxDistance,
			expectHit: true,
			expectedT: 1,
		},
		{
			name:      "leaving the surface takes far root",
			origin:    core.NewVec3(0, 0, 1),
			dir:       core.NewVec3(0, 0, -1),
			radius:    1,
			tIn:       core.MaxDistance,
			expectHit: true,
			expectedT: 2,
		},
		{
			name:      "glancing",
			origin:    core.NewVec3(1, 0, 2),
			dir:       core.NewVec3(0, 0, -1),
			radius:    1,
			tIn:       core.MaxDistance,
			expectHit: true,
			expectedT: 2,
		},
		{
			name:   "miss",
			origin: core.NewVec3(2, 0, 0),
			dir:    core.NewVec3(0, 1, 0),
			radius: 1,
			tIn:    core.MaxDistance,
		},
		{
			name:   "sphere behind ray",
			origin: core.NewVec3(0, 0, 5),
			dir:    core.NewVec3(0, 0, 1),
			radius: 1,
			tIn:    core.MaxDistance,
		},
		{
			name:   "farther than current hit",
			origin: core.NewVec3(0, 0, 5),
			dir:    core.NewVec3(0, 0, -1),
			radius: 1,
			tIn:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tOut := tt.tIn
			hit := IntersectSphere(tt.origin, tt.dir, center, tt.radius, &tOut)

			if hit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t (t=%f)", tt.expectHit, hit, tOut)
			}
			if !hit && tOut != tt.tIn {
				t.Errorf("Expected t to stay %f on miss, got %f", tt.tIn, tOut)
			}
			if hit && math32.Abs(tOut-tt.expectedT) > 1e-4 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, tOut)
			}
		})
	}
}

func TestSphereNormal(t *testing.T) {
	center := core.NewVec3(1, 2, 3)
	n := SphereNormal(core.NewVec3(1, 2, 5), center)

	if !n.ApproxEqualThreshold(core.NewVec3(0, 0, 1), 1e-6) {
		t.Errorf("Expected normal (0,0,1), got %v", n)
	}
}

package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
)

// maxElevation bounds the vertical component of Forward so the camera basis
// never degenerates looking straight up or down
const maxElevation = 0.9

var worldUp = mgl32.Vec3{0, 1, 0}

// Camera is a pinhole camera. Forward is the camera's Z axis and points from
// the scene toward the viewer; the film sits one unit in front of Position,
// at Position - Forward.
//
// Camera is compared by value to detect movement, so it holds no pointers.
type Camera struct {
	Position mgl32.Vec3
	Right    mgl32.Vec3
	Up       mgl32.Vec3
	Forward  mgl32.Vec3
}

// Aim orients the camera along z (pointing backwards, toward the viewer).
// The elevation of z is clamped to ±0.9.
func (c *Camera) Aim(z mgl32.Vec3) {
	z = core.NormalizeOrZero(z)
	if z == (mgl32.Vec3{}) {
		return
	}

	y := mgl32.Clamp(z[1], -maxElevation, maxElevation)
	horizontal := mgl32.Vec2{z[0], z[2]}
	if horizontal.Len() < 1e-6 {
		// Straight up or down: keep the current heading
		horizontal = mgl32.Vec2{c.Forward[0], c.Forward[2]}
		if horizontal.Len() < 1e-6 {
			horizontal = mgl32.Vec2{0, 1}
		}
	}
	horizontal = horizontal.Normalize().Mul(math32.Sqrt(1 - y*y))

	c.Forward = mgl32.Vec3{horizontal[0], y, horizontal[1]}
	c.Right = worldUp.Cross(c.Forward).Normalize()
	c.Up = c.Forward.Cross(c.Right).Normalize()
}

// AimAt places the camera at position looking toward target
func (c *Camera) AimAt(position, target mgl32.Vec3) {
	c.Aim(position.Sub(target))
	c.Position = position
}

// LookDirection returns the direction the camera is looking
func (c Camera) LookDirection() mgl32.Vec3 {
	return c.Forward.Mul(-1)
}

// Move translates the camera along its own axes. Positive back moves away
// from the view direction.
func (c *Camera) Move(right, up, back float32) {
	c.Position = c.Position.
		Add(c.Right.Mul(right)).
		Add(c.Up.Mul(up)).
		Add(c.Forward.Mul(back))
}

// Turn rotates the view by mouse-style deltas: positive dx turns right,
// positive dy looks down
func (c *Camera) Turn(dx, dy float32) {
	c.Aim(c.Forward.Sub(c.Right.Mul(dx)).Add(c.Up.Mul(dy)))
}

// TurnAround faces the opposite direction
func (c *Camera) TurnAround() {
	c.Aim(c.Forward.Mul(-1))
}

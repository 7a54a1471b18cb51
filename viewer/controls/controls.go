// Package controls maps free-look input onto a scene camera
package controls

import (
	"github.com/df07/go-interactive-pathtracer/pkg/scene"
)

const (
	// MoveSpeed is the camera speed in world units per second
	MoveSpeed = 2
	// LookSensitivity scales cursor movement in pixels to aim offsets
	LookSensitivity = 0.003
)

// Input is one frame of polled input
type Input struct {
	Forward, Back bool
	Left, Right   bool
	Up, Down      bool

	// Cursor movement since the last frame, only applied while looking
	LookDX, LookDY float32
	Looking        bool
}

// Moving reports whether any movement key is held
func (in Input) Moving() bool {
	return in.Forward || in.Back || in.Left || in.Right || in.Up || in.Down
}

func axis(positive, negative bool) float32 {
	switch {
	case positive && !negative:
		return 1
	case negative && !positive:
		return -1
	default:
		return 0
	}
}

// Apply moves and turns cam for a frame lasting dt seconds. It returns true
// when the camera changed.
func Apply(cam *scene.Camera, in Input, dt float32) bool {
	before := *cam

	if in.Looking && (in.LookDX != 0 || in.LookDY != 0) {
		cam.Turn(in.LookDX*LookSensitivity, in.LookDY*LookSensitivity)
	}

	if in.Moving() {
		step := MoveSpeed * dt
		// Forward points toward the viewer, so moving ahead is negative back
		cam.Move(axis(in.Right, in.Left)*step, axis(in.Up, in.Down)*step, axis(in.Back, in.Forward)*step)
	}

	return *cam != before
}

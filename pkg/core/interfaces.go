package core

import "github.com/go-gl/mathgl/mgl32"

// Logger interface for renderer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// PixelSink receives radiance samples for individual pixels. Rows are stored
// top-down: y=0 is the top of the image.
type PixelSink interface {
	Width() int
	Height() int
	AddSample(x, y int, radiance mgl32.Vec3)
}

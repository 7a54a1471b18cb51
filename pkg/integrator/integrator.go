package integrator

import (
	"image"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// CastRays renders one sample for every pixel inside bounds into sink.
	// frame seeds the random series, so each pass draws fresh samples.
	// Calls for disjoint bounds may run concurrently.
	CastRays(s *scene.Scene, bounds image.Rectangle, sink core.PixelSink, frame uint32)
}

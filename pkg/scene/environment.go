package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/loaders"
)

// DefaultSky is the flat sky color used when no environment map is loaded
var DefaultSky = mgl32.Vec3{0.5, 0.8, 1.0}

// Environment is the light arriving from directions that hit nothing: either
// a flat sky color or an equirectangular image
type Environment struct {
	Sky mgl32.Vec3
	Map *loaders.ImageData
}

// NewSkyEnvironment creates a flat colored environment
func NewSkyEnvironment(sky mgl32.Vec3) Environment {
	return Environment{Sky: sky}
}

// NewMapEnvironment creates an environment backed by an equirectangular image
func NewMapEnvironment(img *loaders.ImageData) Environment {
	return Environment{Sky: DefaultSky, Map: img}
}

// LoadEnvironment loads an equirectangular image from path. Any failure is
// logged and degrades to the default sky.
func LoadEnvironment(path string, logger core.Logger) Environment {
	if path == "" {
		return NewSkyEnvironment(DefaultSky)
	}

	img, err := loaders.LoadImage(path)
	if err != nil {
		logger.Printf("Environment %s unavailable, using flat sky: %v\n", path, err)
		return NewSkyEnvironment(DefaultSky)
	}
	if img.Width == 0 || img.Height == 0 {
		logger.Printf("Environment %s is empty, using flat sky\n", path)
		return NewSkyEnvironment(DefaultSky)
	}

	logger.Printf("Loaded environment %s (%dx%d)\n", path, img.Width, img.Height)
	return NewMapEnvironment(img)
}

// Lookup returns the radiance arriving from unit direction dir
func (e Environment) Lookup(dir mgl32.Vec3) mgl32.Vec3 {
	if e.Map == nil {
		return e.Sky
	}

	phi := math32.Atan2(dir[2], dir[0])
	theta := math32.Asin(mgl32.Clamp(dir[1], -1, 1))
	u := 0.5 + phi/(2*math32.Pi)
	v := 0.5 + theta/math32.Pi
	if math32.IsNaN(u) || math32.IsNaN(v) {
		return e.Sky
	}

	w, h := e.Map.Width, e.Map.Height
	x := int(u*float32(w)) % w
	// Image rows are top-down while v grows upward
	y := int((1 - v) * float32(h))
	x = min(max(x, 0), w-1)
	y = min(max(y, 0), h-1)
	return e.Map.At(x, y)
}

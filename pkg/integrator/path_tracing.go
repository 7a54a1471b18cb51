package integrator

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/material"
	"github.com/df07/go-interactive-pathtracer/pkg/scene"
)

// DefaultMaxBounces caps path length; light past the cap is absorbed
const DefaultMaxBounces = 8

const (
	minSurvival = 0.1
	maxSurvival = 0.9
)

// filmDistance is the distance from the camera position to the film plane
const filmDistance = 1

// PathTracer implements unidirectional path tracing with next event
// estimation toward the scene's directional light
type PathTracer struct {
	maxBounces int
}

// NewPathTracer creates a path tracer; maxBounces <= 0 selects DefaultMaxBounces
func NewPathTracer(maxBounces int) *PathTracer {
	if maxBounces <= 0 {
		maxBounces = DefaultMaxBounces
	}
	return &PathTracer{maxBounces: maxBounces}
}

// MaxBounces returns the path length cap
func (pt *PathTracer) MaxBounces() int {
	return pt.maxBounces
}

// CastRays traces one jittered camera ray per pixel in bounds and adds the
// result to sink. The random series is seeded from the tile corner and frame.
func (pt *PathTracer) CastRays(s *scene.Scene, bounds image.Rectangle, sink core.PixelSink, frame uint32) {
	w, h := sink.Width(), sink.Height()
	cam := s.Camera

	rng := core.NewRandom(core.HashCoordinate(uint32(bounds.Min.X), uint32(bounds.Min.Y), frame))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dir := PrimaryRay(cam, x, y, w, h, rng.BilateralVec2())

			radiance := pt.Radiance(s, cam.Position, dir, &rng)
			if !core.IsFinite(radiance) {
				radiance = mgl32.Vec3{}
			}
			sink.AddSample(x, y, radiance)
		}
	}
}

// PrimaryRay returns the unit direction from the camera through pixel (x, y)
// of a w by h film. jitter offsets the sample within the pixel, each
// component in [-1, 1]; a zero jitter aims at the pixel centre.
func PrimaryRay(cam scene.Camera, x, y, w, h int, jitter mgl32.Vec2) mgl32.Vec3 {
	rcpW := 1 / float32(w)
	rcpH := 1 / float32(h)
	filmHeight := float32(h) / float32(w)

	// Rows are top-down, v is up
	u := -1 + 2*rcpW*(float32(x)+0.5)
	v := 1 - 2*rcpH*(float32(y)+0.5)

	filmU := u + rcpW*jitter[0]
	filmV := filmHeight * (v + rcpH*jitter[1])

	filmCenter := cam.Position.Sub(cam.Forward.Mul(filmDistance))
	filmP := filmCenter.Add(cam.Right.Mul(filmU)).Add(cam.Up.Mul(filmV))
	return core.NormalizeOrZero(filmP.Sub(cam.Position))
}

// Radiance estimates the light arriving at origin from unit direction dir
func (pt *PathTracer) Radiance(s *scene.Scene, origin, dir mgl32.Vec3, rng *core.Random) mgl32.Vec3 {
	var total mgl32.Vec3
	throughput := mgl32.Vec3{1, 1, 1}

	for bounce := 0; bounce < pt.maxBounces; bounce++ {
		t := core.MaxDistance
		hit, ok := s.Trace(origin, dir, &t)
		if !ok {
			total = total.Add(core.MultiplyVec(throughput, s.Environment.Lookup(dir)))
			break
		}

		hitP := origin.Add(dir.Mul(t))
		n := hit.Normal
		cosThetaI := -n.Dot(dir)
		if cosThetaI < 0 {
			n = n.Mul(-1)
			cosThetaI = -cosThetaI
		}

		m := s.Material(hit.Material)
		if m.IsEmissive() {
			total = total.Add(core.MultiplyVec(throughput, m.Emissive))
		}

		alive := true
		switch m.Kind {
		case material.Mirror:
			dir = material.Reflect(dir, n)
			throughput = core.MultiplyVec(throughput, m.Albedo)

		case material.Dielectric:
			reflectance, _ := material.FresnelDielectric(cosThetaI, 1, m.IOR)
			if rng.Unilateral() < reflectance {
				// Specular coat, untinted
				dir = material.Reflect(dir, n)
			} else {
				dir, alive = pt.scatterDiffuse(s, m, hitP, n, &throughput, &total, rng)
			}

		default:
			dir, alive = pt.scatterDiffuse(s, m, hitP, n, &throughput, &total, rng)
		}

		if !alive {
			break
		}
		origin = hitP.Add(dir.Mul(core.Epsilon))
	}

	return total
}

// scatterDiffuse gathers direct light from the directional light, samples
// the next direction from the cosine-weighted hemisphere around n and plays
// Russian roulette. It returns false when the path terminates.
func (pt *PathTracer) scatterDiffuse(s *scene.Scene, m *material.Material, hitP, n mgl32.Vec3, throughput, total *mgl32.Vec3, rng *core.Random) (mgl32.Vec3, bool) {
	brdf := m.Albedo.Mul(1 / math32.Pi)
	*throughput = core.MultiplyVec(*throughput, brdf)

	// N·L is checked before casting the shadow ray
	if s.HasDirectionalLight() {
		light := s.Light
		nDotL := n.Dot(light.Direction)
		if nDotL > 0 && !s.Occluded(hitP.Add(light.Direction.Mul(core.Epsilon)), light.Direction, core.MaxDistance) {
			*total = total.Add(core.MultiplyVec(*throughput, light.Emission).Mul(nDotL))
		}
	}

	dir := core.MapToCosineWeightedHemisphere(n, rng.UnilateralVec2())

	// The cosine term and the 1/pdf of cosine sampling cancel to π
	*throughput = throughput.Mul(math32.Pi)

	survived, ok := RussianRoulette(*throughput, rng.Unilateral())
	if !ok {
		return dir, false
	}
	*throughput = survived
	return dir, true
}

// SurvivalProbability returns the Russian roulette survival chance for a
// path with the given throughput
func SurvivalProbability(throughput mgl32.Vec3) float32 {
	return mgl32.Clamp(core.Max3(throughput), minSurvival, maxSurvival)
}

// RussianRoulette terminates the path when u exceeds the survival
// probability; otherwise it returns the throughput divided by that
// probability, which keeps the estimator unbiased
func RussianRoulette(throughput mgl32.Vec3, u float32) (mgl32.Vec3, bool) {
	p := SurvivalProbability(throughput)
	if u > p {
		return mgl32.Vec3{}, false
	}
	return throughput.Mul(1 / p), true
}

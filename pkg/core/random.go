package core

import "github.com/go-gl/mathgl/mgl32"

// fallbackSeed replaces a zero seed, which would lock xorshift at zero forever
const fallbackSeed uint32 = 0x9e3779b9

// Random is a 32-bit xorshift series. It is cheap to copy and owned by a
// single goroutine; tiles create their own series from HashCoordinate.
type Random struct {
	state uint32
}

// NewRandom creates a random series from seed
func NewRandom(seed uint32) Random {
	if seed == 0 {
		seed = fallbackSeed
	}
	return Random{state: seed}
}

// Next advances the series and returns the raw 32-bit value
func (r *Random) Next() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Unilateral returns a uniform sample in [0, 1)
func (r *Random) Unilateral() float32 {
	// Top 24 bits map exactly onto the float32 mantissa.
	return float32(r.Next()>>8) * (1.0 / 16777216.0)
}

// Bilateral returns a uniform sample in [-1, 1)
func (r *Random) Bilateral() float32 {
	return -1 + 2*r.Unilateral()
}

// UnilateralVec2 returns two uniform samples in [0, 1)
func (r *Random) UnilateralVec2() mgl32.Vec2 {
	return mgl32.Vec2{r.Unilateral(), r.Unilateral()}
}

// BilateralVec2 returns two uniform samples in [-1, 1)
func (r *Random) BilateralVec2() mgl32.Vec2 {
	return mgl32.Vec2{r.Bilateral(), r.Bilateral()}
}

// HashCoordinate mixes three integers into a seed. Tiles hash their minimum
// corner with the frame index so every tile of every frame gets an
// independent, reproducible series.
func HashCoordinate(x, y, z uint32) uint32 {
	return (x * 73856093) ^ (y * 83492791) ^ (z * 871603259)
}

package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Tangents returns two unit vectors that complete an orthonormal basis with
// the unit normal n. Branchless construction from Duff et al., "Building an
// Orthonormal Basis, Revisited" (JCGT 2017); the denominator is never zero.
func Tangents(n mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	sign := math32.Copysign(1, n[2])
	a := -1 / (sign + n[2])
	b := n[0] * n[1] * a
	b1 := mgl32.Vec3{1 + sign*n[0]*n[0]*a, sign * b, -sign * n[0]}
	b2 := mgl32.Vec3{b, sign + n[1]*n[1]*a, -n[1]}
	return b1, b2
}

// OrientedAroundNormal maps v from a local frame whose Y axis is "up" into
// the world frame around n
func OrientedAroundNormal(v, n mgl32.Vec3) mgl32.Vec3 {
	t, b := Tangents(n)
	return b.Mul(v[0]).Add(n.Mul(v[1])).Add(t.Mul(v[2]))
}

// MapToCosineWeightedHemisphere maps a uniform sample in [0,1)^2 to a
// direction around n with pdf cos(theta)/pi
func MapToCosineWeightedHemisphere(n mgl32.Vec3, sample mgl32.Vec2) mgl32.Vec3 {
	azimuth := 2 * math32.Pi * sample[0]
	y := sample[1]
	r := math32.Sqrt(math32.Max(0, 1-y))
	local := mgl32.Vec3{math32.Cos(azimuth) * r, math32.Sqrt(y), math32.Sin(azimuth) * r}
	return OrientedAroundNormal(local, n)
}

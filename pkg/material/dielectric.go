package material

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// minFresnelDenominator guards the Fresnel terms at grazing angles
const minFresnelDenominator = 1e-8

// FresnelDielectric returns the unpolarized Fresnel reflectance of a
// dielectric interface for an incident cosine cosThetaI going from a medium
// with index etaI into one with index etaT, together with the cosine of the
// transmitted direction. Total internal reflection reports a reflectance of 1.
func FresnelDielectric(cosThetaI, etaI, etaT float32) (reflectance, cosThetaT float32) {
	cosThetaI = mgl32.Clamp(cosThetaI, 0, 1)

	// Snell's law
	sinThetaI := math32.Sqrt(math32.Max(0, 1-cosThetaI*cosThetaI))
	sinThetaT := etaI / etaT * sinThetaI
	cosThetaT = math32.Sqrt(math32.Max(0, 1-sinThetaT*sinThetaT))

	if sinThetaT >= 1 {
		return 1, cosThetaT
	}

	parallelDenom := etaT*cosThetaI + etaI*cosThetaT
	perpendicularDenom := etaI*cosThetaI + etaT*cosThetaT
	if parallelDenom < minFresnelDenominator || perpendicularDenom < minFresnelDenominator {
		return 1, cosThetaT
	}

	rParallel := (etaT*cosThetaI - etaI*cosThetaT) / parallelDenom
	rPerpendicular := (etaI*cosThetaI - etaT*cosThetaT) / perpendicularDenom
	return 0.5 * (rParallel*rParallel + rPerpendicular*rPerpendicular), cosThetaT
}

// Reflect mirrors d about the unit normal n
func Reflect(d, n mgl32.Vec3) mgl32.Vec3 {
	return d.Sub(n.Mul(2 * d.Dot(n)))
}

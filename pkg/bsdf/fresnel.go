package bsdf

import (
	"math"

	"github.com/rkvale/tracecore/pkg/xmath"
)

// fresnelDielectric is the exact unpolarized Fresnel reflectance for a
// dielectric interface, cosThetaI measured from the surface normal on the
// incident side; eta = eta_transmitted / eta_incident.
func fresnelDielectric(cosThetaI, eta float32) float32 {
	ci := xmath.Clamp32(cosThetaI, -1, 1)
	e := eta
	if ci < 0 {
		e = 1 / eta
		ci = -ci
	}

	sin2ThetaI := xmath.Max32(0, 1-ci*ci)
	sin2ThetaT := sin2ThetaI / (e * e)
	if sin2ThetaT >= 1 {
		return 1 // total internal reflection
	}
	cosThetaT := float32(math.Sqrt(float64(xmath.Max32(0, 1-sin2ThetaT))))

	rParallel := (e*ci - cosThetaT) / (e*ci + cosThetaT)
	rPerp := (ci - e*cosThetaT) / (ci + e*cosThetaT)
	return 0.5 * (rParallel*rParallel + rPerp*rPerp)
}

// refract computes the refracted direction for incident wi (pointing away
// from the surface, local frame, wi.Z>0 convention) given eta = eta_t/eta_i.
// Returns ok=false on total internal reflection.
func refract(wi xmath.Vec3, eta float32) (wt xmath.Vec3, ok bool) {
	cosThetaI := wi.Z
	sin2ThetaI := xmath.Max32(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := sin2ThetaI / (eta * eta)
	if sin2ThetaT >= 1 {
		return xmath.Vec3{}, false
	}
	cosThetaT := float32(math.Sqrt(float64(1 - sin2ThetaT)))
	if cosThetaI < 0 {
		cosThetaT = -cosThetaT
	}
	wt = wi.Neg().Scale(1 / eta).Add(xmath.Vec3{Z: cosThetaI/eta - cosThetaT})
	return wt, true
}

// fresnelConductorF82 evaluates a Schlick-style curve from normal-incidence
// reflectivity F0 to edgeTint at grazing incidence:
// F0 + (edgeTint-F0)*(1-cosθ)^5. It does not derive a complex index of
// refraction (n, k) from F0 and edgeTint and does not evaluate the exact
// conductor Fresnel equations.
func fresnelConductorF82(cosTheta float32, f0, edgeTint xmath.Vec3) xmath.Vec3 {
	c := xmath.Clamp32(cosTheta, 0, 1)
	oneMinusCos := 1 - c
	pow5 := oneMinusCos * oneMinusCos * oneMinusCos * oneMinusCos * oneMinusCos

	blend := func(f0c, edgeC float32) float32 {
		return f0c + (edgeC-f0c)*pow5
	}

	return xmath.Vec3{
		X: blend(f0.X, edgeTint.X),
		Y: blend(f0.Y, edgeTint.Y),
		Z: blend(f0.Z, edgeTint.Z),
	}
}

package bsdf

import "github.com/rkvale/tracecore/pkg/xmath"

// Emission returns this BSDF's emitted radiance for KindAreaLight, weighted
// by Weight and sign-gated by the shading normal so only the front face
// emits unless TwoSided is set. Callers reach this directly rather than via
// Sample/Eval/Pdf, which all return the zero value for area lights — the
// light's contribution is added at the integrator's hit-an-emissive-surface
// step, not through the scattering contract.
func (b BSDF) Emission(woLocal xmath.Vec3, radiance xmath.Vec3) xmath.Vec3 {
	if b.Kind != KindAreaLight {
		return xmath.Vec3{}
	}
	if woLocal.Z <= 0 && !b.TwoSided {
		return xmath.Vec3{}
	}
	return radiance.Scale(b.Weight)
}

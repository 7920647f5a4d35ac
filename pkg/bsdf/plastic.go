package bsdf

import (
	"github.com/rkvale/tracecore/pkg/texture"
	"github.com/rkvale/tracecore/pkg/xmath"
)

// internalFdr approximates the hemispherical-average internal Fresnel
// reflectance of a dielectric boundary (Egan & Hilgeman's fit, also used by
// Jensen et al.'s subsurface scattering work) — the fraction of diffusely
// scattered light from the substrate that is reflected back down by the
// coat instead of escaping, which the substrate's exitant radiance must be
// divided by (1-albedo*Fdr) to stay energy conserving under multiple
// internal bounces.
func internalFdr(eta float32) float32 {
	if eta < 1 {
		return -0.4399 + 0.7099/eta - 0.3319/(eta*eta) + 0.0636/(eta*eta*eta)
	}
	return -1.4399/(eta*eta) + 0.7099/eta + 0.6681 + 0.0636*eta
}

// samplePlastic models a smooth dielectric coat over a Lambertian substrate:
// with probability Fr(wo) clamped to [0.1, 0.9] (the same value pdfPlastic
// uses) the specular lobe is sampled (mirror reflection),
// otherwise a cosine-weighted direction is drawn for the diffuse substrate
// and its contribution is compensated for the light the coat reflects back
// down before it can escape (see internalFdr).
func (b BSDF) samplePlastic(wo xmath.Vec3, uv xmath.Vec2, tex texture.Table, rng Rand) Sample {
	frO := fresnelDielectric(wo.Z, b.Eta)
	specProb := xmath.Clamp32(frO, 0.1, 0.9)

	if rng.Get1D() < specProb {
		wi := xmath.Vec3{X: -wo.X, Y: -wo.Y, Z: wo.Z}
		specR := tex.Sample(b.SpecularReflectance, uv)
		return Sample{Wi: wi, Value: specR.Scale(frO / specProb), Pdf: specProb, Event: EventReflect, Valid: true}
	}

	u, v := rng.Get2D()
	wi, cosPdf := xmath.SampleCosineHemisphere(u, v)
	if cosPdf <= 0 {
		return Sample{}
	}
	f := b.plasticDiffuseTerm(wo, wi, frO, uv, tex)
	pdf := (1 - specProb) * cosPdf
	if pdf <= 0 {
		return Sample{}
	}
	return Sample{Wi: wi, Value: f.Scale(wi.Z / pdf), Pdf: pdf, Event: EventReflect, Valid: true}
}

func (b BSDF) plasticDiffuseTerm(wo, wi xmath.Vec3, frO float32, uv xmath.Vec2, tex texture.Table) xmath.Vec3 {
	frI := fresnelDielectric(wi.Z, b.Eta)
	albedo := tex.Sample(b.Reflectance, uv)
	fdr := internalFdr(b.Eta)
	invEta2 := 1 / (b.Eta * b.Eta)

	scale := func(a float32) float32 {
		denom := 1 - a*fdr
		if denom < 1e-3 {
			denom = 1e-3
		}
		return (1 - frO) * (1 - frI) * invEta2 * float32(xmath.InvPi) / denom
	}
	return xmath.Vec3{
		X: albedo.X * scale(albedo.X),
		Y: albedo.Y * scale(albedo.Y),
		Z: albedo.Z * scale(albedo.Z),
	}
}

func (b BSDF) evalPlastic(wo, wi xmath.Vec3, uv xmath.Vec2, tex texture.Table) xmath.Vec3 {
	if wo.Z <= 0 || wi.Z <= 0 {
		return xmath.Vec3{}
	}
	frO := fresnelDielectric(wo.Z, b.Eta)
	return b.plasticDiffuseTerm(wo, wi, frO, uv, tex).Scale(wi.Z)
}

func (b BSDF) pdfPlastic(wo, wi xmath.Vec3, uv xmath.Vec2, tex texture.Table) float32 {
	if wo.Z <= 0 || wi.Z <= 0 {
		return 0
	}
	frO := fresnelDielectric(wo.Z, b.Eta)
	specProb := xmath.Clamp32(frO, 0.1, 0.9)
	return (1 - specProb) * wi.Z * float32(xmath.InvPi)
}

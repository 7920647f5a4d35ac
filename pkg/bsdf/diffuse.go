package bsdf

import (
	"math"

	"github.com/rkvale/tracecore/pkg/texture"
	"github.com/rkvale/tracecore/pkg/xmath"
)

// sampleDiffuse draws a cosine-weighted direction and returns the Monte
// Carlo weight f*cosθ/pdf, which for Lambertian collapses to the albedo
// itself (the cosθ/π sampling density cancels the cosθ/π brdf exactly).
func (b BSDF) sampleDiffuse(wo xmath.Vec3, uv xmath.Vec2, tex texture.Table, rng Rand) Sample {
	u, v := rng.Get2D()
	wi, pdf := xmath.SampleCosineHemisphere(u, v)
	if pdf <= 0 {
		return Sample{}
	}
	albedo := tex.Sample(b.Reflectance, uv)
	return Sample{Wi: wi, Value: albedo, Pdf: pdf, Event: EventReflect, Valid: true}
}

func (b BSDF) evalDiffuse(wo, wi xmath.Vec3, uv xmath.Vec2, tex texture.Table) xmath.Vec3 {
	if wi.Z <= 0 {
		return xmath.Vec3{}
	}
	albedo := tex.Sample(b.Reflectance, uv)
	return albedo.Scale(wi.Z * float32(xmath.InvPi))
}

func (b BSDF) pdfDiffuse(wo, wi xmath.Vec3) float32 {
	if wi.Z <= 0 {
		return 0
	}
	return wi.Z * float32(xmath.InvPi)
}

// sampleRoughDiffuse draws a cosine-weighted direction (spec §4.4: "sampling
// is cosine-hemisphere") and evaluates the Oren-Nayar microfacet diffuse BRDF
// for the weight.
func (b BSDF) sampleRoughDiffuse(wo xmath.Vec3, uv xmath.Vec2, tex texture.Table, rng Rand) Sample {
	u, v := rng.Get2D()
	wi, pdf := xmath.SampleCosineHemisphere(u, v)
	if pdf <= 0 {
		return Sample{}
	}
	f := b.evalRoughDiffuse(wo, wi, uv, tex)
	return Sample{Wi: wi, Value: f.Scale(1 / pdf), Pdf: pdf, Event: EventReflect, Valid: true}
}

func (b BSDF) evalRoughDiffuse(wo, wi xmath.Vec3, uv xmath.Vec2, tex texture.Table) xmath.Vec3 {
	if wi.Z <= 0 || wo.Z <= 0 {
		return xmath.Vec3{}
	}
	albedo := tex.Sample(b.Reflectance, uv)
	sigma := float32(0)
	if b.Roughness != texture.InvalidID {
		sigma = tex.Sample(b.Roughness, uv).X
	}
	orenNayar := orenNayarTerm(wo, wi, sigma, b.UseFastOrenNayarApprox)
	return albedo.Scale(orenNayar * wi.Z * float32(xmath.InvPi))
}

func (b BSDF) pdfRoughDiffuse(wo, wi xmath.Vec3) float32 {
	if wi.Z <= 0 {
		return 0
	}
	return wi.Z * float32(xmath.InvPi)
}

// orenNayarTerm computes the standard A + B*max(0,cosΔφ)*sinα*tanβ factor
// from Oren & Nayar's 1994 qualitative model. When useFastApprox is set the
// sinα*tanβ term is formed as sin(max θ)*tan(min θ) directly with Max32
// instead of the branch on which angle is larger; both forms give the same
// value, and neither calls atan2.
func orenNayarTerm(wo, wi xmath.Vec3, sigma float32, useFastApprox bool) float32 {
	sigma2 := sigma * sigma
	a := float32(1) - 0.5*sigma2/(sigma2+0.33)
	bTerm := float32(0.45) * sigma2 / (sigma2 + 0.09)

	cosThetaI := xmath.AbsCos(wi)
	cosThetaO := xmath.AbsCos(wo)
	sinThetaI := sinFromCos(cosThetaI)
	sinThetaO := sinFromCos(cosThetaO)

	var cosDeltaPhi float32
	if sinThetaI > 1e-4 && sinThetaO > 1e-4 {
		cosPhiI, sinPhiI := wi.X/sinThetaI, wi.Y/sinThetaI
		cosPhiO, sinPhiO := wo.X/sinThetaO, wo.Y/sinThetaO
		cosDeltaPhi = xmath.Clamp32(cosPhiI*cosPhiO+sinPhiI*sinPhiO, -1, 1)
	}

	var sinAlpha, tanBeta float32
	if useFastApprox {
		// Fast approximation: treat sinAlpha*tanBeta as sin(max)*tan(min)
		// without branching on which angle is larger; adequate since the
		// max/min swap only changes which of two already-computed sin/cos
		// ratios gets divided.
		sinAlpha = xmath.Max32(sinThetaI, sinThetaO)
		minCos := xmath.Max32(cosThetaI, cosThetaO)
		tanBeta = sinFromCos(minCos) / xmath.Max32(minCos, 1e-4)
	} else {
		if cosThetaI < cosThetaO {
			sinAlpha = sinThetaI
			tanBeta = sinThetaO / xmath.Max32(cosThetaO, 1e-4)
		} else {
			sinAlpha = sinThetaO
			tanBeta = sinThetaI / xmath.Max32(cosThetaI, 1e-4)
		}
	}

	maxCosDeltaPhi := xmath.Max32(0, cosDeltaPhi)
	return a + bTerm*maxCosDeltaPhi*sinAlpha*tanBeta
}

func sinFromCos(cosTheta float32) float32 {
	return float32(math.Sqrt(float64(xmath.Max32(0, 1-cosTheta*cosTheta))))
}

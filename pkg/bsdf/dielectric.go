package bsdf

import (
	"math"

	"github.com/rkvale/tracecore/pkg/texture"
	"github.com/rkvale/tracecore/pkg/xmath"
)

// sampleDielectric handles both the smooth delta case and the rough GGX
// case. b.Eta is configured as int_ior/ext_ior, i.e. the ratio that applies
// when the ray is entering the medium from outside; entering (threaded down
// from scene.Hit.FrontFace, see dispatch.go) tells us which side of the
// interface we're actually on, since the local shading frame is always
// oriented against the incoming ray and so wo.Z alone can never carry that
// signal — the same branch-on-front-face-before-refracting the teacher's
// own Scatter does.
func (b BSDF) sampleDielectric(wo xmath.Vec3, entering bool, uv xmath.Vec2, tex texture.Table, rng Rand) Sample {
	alphaU, alphaV := b.alphaU(uv, tex), b.alphaV(uv, tex)
	if isSmooth(alphaU, alphaV) {
		return b.sampleSmoothDielectric(wo, entering, uv, tex, rng)
	}
	return b.sampleRoughDielectric(wo, entering, alphaU, alphaV, uv, tex, rng)
}

// relativeEta returns eta_transmitted/eta_incident for the side of the
// interface the ray is actually arriving from.
func (b BSDF) relativeEta(entering bool) float32 {
	if entering {
		return b.Eta
	}
	return 1 / b.Eta
}

func (b BSDF) sampleSmoothDielectric(wo xmath.Vec3, entering bool, uv xmath.Vec2, tex texture.Table, rng Rand) Sample {
	eta := b.relativeEta(entering)
	fr := fresnelDielectric(wo.Z, eta)
	specR := tex.Sample(b.SpecularReflectance, uv)
	specT := tex.Sample(b.SpecularTransmittance, uv)

	if rng.Get1D() < fr {
		wi := xmath.Vec3{X: -wo.X, Y: -wo.Y, Z: wo.Z}
		return Sample{Wi: wi, Value: specR, Pdf: fr, Event: EventReflect, Valid: true}
	}

	wt, ok := refract(wo, eta)
	if !ok {
		// Total internal reflection: all energy goes to the reflection lobe.
		wi := xmath.Vec3{X: -wo.X, Y: -wo.Y, Z: wo.Z}
		return Sample{Wi: wi, Value: specR, Pdf: fr, Event: EventReflect, Valid: true}
	}
	// Radiance scaling eta_t^2/eta_i^2 across the boundary (spec §4.4).
	value := specT.Scale(eta * eta)
	return Sample{Wi: wt, Value: value, Pdf: 1 - fr, Event: EventTransmit, Valid: true}
}

func (b BSDF) sampleRoughDielectric(wo xmath.Vec3, entering bool, alphaU, alphaV float32, uv xmath.Vec2, tex texture.Table, rng Rand) Sample {
	eta := b.relativeEta(entering)
	u, v := rng.Get2D()
	wm := xmath.SampleGGXVNDF(absZ(wo), alphaU, alphaV, u, v)
	if wo.Z < 0 {
		wm = wm.Neg()
	}

	fr := fresnelDielectric(wo.Dot(wm), eta)
	specR := tex.Sample(b.SpecularReflectance, uv)
	specT := tex.Sample(b.SpecularTransmittance, uv)

	if rng.Get1D() < fr {
		wi := wm.Scale(2 * wo.Dot(wm)).Sub(wo)
		if wi.Z*wo.Z <= 0 {
			return Sample{}
		}
		g := ggxG(wo, wi, alphaU, alphaV)
		g1 := ggxG1(wo, alphaU, alphaV)
		return Sample{Wi: wi, Value: specR.Scale(g / xmath.Max32(g1, 1e-6)), Pdf: fr * ggxPdf(wo, wm, alphaU, alphaV), Event: EventReflect, Valid: true}
	}

	wt, ok := refractAbout(wo, wm, eta)
	if !ok {
		return Sample{}
	}
	g := ggxG(wo, wt, alphaU, alphaV)
	g1 := ggxG1(wo, alphaU, alphaV)
	value := specT.Scale(eta * eta * g / xmath.Max32(g1, 1e-6))
	return Sample{Wi: wt, Value: value, Pdf: (1 - fr) * ggxPdf(wo, wm, alphaU, alphaV), Event: EventTransmit, Valid: true}
}

func absZ(v xmath.Vec3) xmath.Vec3 {
	if v.Z < 0 {
		return v.Neg()
	}
	return v
}

// refractAbout refracts wo about microfacet normal wm (instead of the
// geometric normal), per Walter et al. 2007's rough-refraction construction.
func refractAbout(wo, wm xmath.Vec3, eta float32) (xmath.Vec3, bool) {
	cosThetaI := wo.Dot(wm)
	e := eta
	if cosThetaI < 0 {
		e = 1 / eta
	}
	sin2ThetaI := xmath.Max32(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := sin2ThetaI / (e * e)
	if sin2ThetaT >= 1 {
		return xmath.Vec3{}, false
	}
	cosThetaT := float32(math.Sqrt(float64(1 - sin2ThetaT)))
	if cosThetaI > 0 {
		cosThetaT = -cosThetaT
	}
	return wm.Scale(cosThetaI/e + cosThetaT).Sub(wo.Scale(1 / e)), true
}

func (b BSDF) evalDielectric(wo, wi xmath.Vec3, entering bool, uv xmath.Vec2, tex texture.Table) xmath.Vec3 {
	alphaU, alphaV := b.alphaU(uv, tex), b.alphaV(uv, tex)
	if isSmooth(alphaU, alphaV) {
		return xmath.Vec3{} // delta: never evaluated by NEE
	}
	eta := b.relativeEta(entering)
	reflect := wi.Z*wo.Z > 0
	if reflect {
		wm := wo.Add(wi).Normalize()
		if wm.Z < 0 {
			wm = wm.Neg()
		}
		fr := fresnelDielectric(wo.Dot(wm), eta)
		d := ggxD(wm, alphaU, alphaV)
		g := ggxG(wo, wi, alphaU, alphaV)
		specR := tex.Sample(b.SpecularReflectance, uv)
		f := fr * d * g / (4 * xmath.AbsCos(wo) * xmath.AbsCos(wi))
		return specR.Scale(f * xmath.AbsCos(wi))
	}

	wm := wo.Scale(eta).Add(wi).Normalize().Neg()
	if wm.Z < 0 {
		wm = wm.Neg()
	}
	fr := fresnelDielectric(wo.Dot(wm), eta)
	d := ggxD(wm, alphaU, alphaV)
	g := ggxG(wo, wi, alphaU, alphaV)
	denom := wo.Dot(wm) + eta*wi.Dot(wm)
	if denom == 0 {
		return xmath.Vec3{}
	}
	specT := tex.Sample(b.SpecularTransmittance, uv)
	f := (1 - fr) * d * g * absF(wi.Dot(wm)*wo.Dot(wm)/(wi.Z*wo.Z)) * eta * eta / (denom * denom)
	return specT.Scale(f * xmath.AbsCos(wi))
}

func (b BSDF) pdfDielectric(wo, wi xmath.Vec3, entering bool, uv xmath.Vec2, tex texture.Table) float32 {
	alphaU, alphaV := b.alphaU(uv, tex), b.alphaV(uv, tex)
	if isSmooth(alphaU, alphaV) {
		return 0
	}
	eta := b.relativeEta(entering)
	reflect := wi.Z*wo.Z > 0
	if reflect {
		wm := wo.Add(wi).Normalize()
		if wm.Z < 0 {
			wm = wm.Neg()
		}
		fr := fresnelDielectric(wo.Dot(wm), eta)
		return fr * ggxPdf(wo, wm, alphaU, alphaV)
	}
	wm := wo.Scale(eta).Add(wi).Normalize().Neg()
	if wm.Z < 0 {
		wm = wm.Neg()
	}
	fr := fresnelDielectric(wo.Dot(wm), eta)
	return (1 - fr) * ggxPdf(wo, wm, alphaU, alphaV)
}

func absF(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// sampleThinDielectric treats the surface as two parallel interfaces at zero
// separation: transmission passes straight through (no bending) and does
// not apply the η² radiance scale, and the effective reflectance accounts
// for light bouncing internally between the two interfaces before escaping.
func (b BSDF) sampleThinDielectric(wo xmath.Vec3, uv xmath.Vec2, tex texture.Table, rng Rand) Sample {
	r := fresnelDielectric(wo.Z, b.Eta)
	if r < 1 {
		t := 1 - r
		r = r + t*t*r/(1-r*r) // compensate for internal bounces between the two interfaces
	}
	specR := tex.Sample(b.SpecularReflectance, uv)
	specT := tex.Sample(b.SpecularTransmittance, uv)

	if rng.Get1D() < r {
		wi := xmath.Vec3{X: -wo.X, Y: -wo.Y, Z: wo.Z}
		return Sample{Wi: wi, Value: specR, Pdf: r, Event: EventReflect, Valid: true}
	}
	wi := wo.Neg() // straight through, no refraction bend
	return Sample{Wi: wi, Value: specT, Pdf: 1 - r, Event: EventTransmit, Valid: true}
}

package bsdf

import (
	"github.com/rkvale/tracecore/pkg/texture"
	"github.com/rkvale/tracecore/pkg/xmath"
)

// Rand is the minimal randomness surface a BSDF sample needs; satisfied by
// *xrand.Stream without this package importing it (keeps bsdf free of a
// dependency on the renderer's RNG concretely, matching the teacher's
// pattern of accepting a narrow local interface at the API boundary).
type Rand interface {
	Get1D() float32
	Get2D() (float32, float32)
}

// Sample implements the common envelope (opacity pass-through, twosided
// hemisphere policy) and then dispatches to the variant's sampler. entering
// is true when the ray arrived at the surface's front (outward-facing)
// side, per scene.Hit.FrontFace — the Dielectric variant needs it to pick
// which side of the interface Eta applies to, since the local shading
// frame itself is always oriented against the incoming ray and so wo.Z can
// never carry that signal.
func (b BSDF) Sample(wo xmath.Vec3, uv xmath.Vec2, tex texture.Table, rng Rand, entering bool) Sample {
	if b.OpacityID != texture.InvalidID {
		alpha := tex.Sample(b.OpacityID, uv).X
		if rng.Get1D() > alpha {
			return Sample{Wi: wo.Neg(), Value: xmath.Vec3{X: 1, Y: 1, Z: 1}, Pdf: 1, Event: EventNull, Valid: true}
		}
	}

	woLocal, flipped := b.orient(wo)
	if !flipped.ok {
		return Sample{}
	}
	woLocal = flipped.wo

	var s Sample
	switch b.Kind {
	case KindDiffuse:
		s = b.sampleDiffuse(woLocal, uv, tex, rng)
	case KindRoughDiffuse:
		s = b.sampleRoughDiffuse(woLocal, uv, tex, rng)
	case KindDielectric:
		s = b.sampleDielectric(woLocal, entering, uv, tex, rng)
	case KindThinDielectric:
		s = b.sampleThinDielectric(woLocal, uv, tex, rng)
	case KindConductor:
		s = b.sampleConductor(woLocal, uv, tex, rng)
	case KindPlastic:
		s = b.samplePlastic(woLocal, uv, tex, rng)
	case KindAreaLight:
		return Sample{}
	default:
		return Sample{}
	}
	if !s.Valid {
		return s
	}
	s.Wi = flipped.unflip(s.Wi)
	return s
}

// Eval implements the common envelope and dispatches to the variant's
// evaluator. Delta variants (Dielectric/ThinDielectric/Conductor when
// smooth) return zero, matching "a delta BSDF is never hit by NEE".
func (b BSDF) Eval(wo, wi xmath.Vec3, uv xmath.Vec2, tex texture.Table, entering bool) xmath.Vec3 {
	woLocal, flipped := b.orient(wo)
	if !flipped.ok {
		return xmath.Vec3{}
	}
	woLocal = flipped.wo
	wiLocal := flipped.flipSame(wi)

	switch b.Kind {
	case KindDiffuse:
		return b.evalDiffuse(woLocal, wiLocal, uv, tex)
	case KindRoughDiffuse:
		return b.evalRoughDiffuse(woLocal, wiLocal, uv, tex)
	case KindDielectric:
		return b.evalDielectric(woLocal, wiLocal, entering, uv, tex)
	case KindConductor:
		return b.evalConductor(woLocal, wiLocal, uv, tex)
	case KindPlastic:
		return b.evalPlastic(woLocal, wiLocal, uv, tex)
	default:
		return xmath.Vec3{}
	}
}

// Pdf implements the common envelope and dispatches to the variant's pdf.
func (b BSDF) Pdf(wo, wi xmath.Vec3, uv xmath.Vec2, tex texture.Table, entering bool) float32 {
	woLocal, flipped := b.orient(wo)
	if !flipped.ok {
		return 0
	}
	woLocal = flipped.wo
	wiLocal := flipped.flipSame(wi)

	switch b.Kind {
	case KindDiffuse:
		return b.pdfDiffuse(woLocal, wiLocal)
	case KindRoughDiffuse:
		return b.pdfRoughDiffuse(woLocal, wiLocal)
	case KindDielectric:
		return b.pdfDielectric(woLocal, wiLocal, entering, uv, tex)
	case KindConductor:
		return b.pdfConductor(woLocal, wiLocal, uv, tex)
	case KindPlastic:
		return b.pdfPlastic(woLocal, wiLocal, uv, tex)
	default:
		return 0
	}
}

// IsDelta reports whether this variant's current roughness is below the
// smooth threshold, i.e. it only ever produces specular (zero-measure) events.
func (b BSDF) IsDelta(uv xmath.Vec2, tex texture.Table) bool {
	switch b.Kind {
	case KindDielectric, KindThinDielectric:
		return isSmooth(b.alphaU(uv, tex), b.alphaV(uv, tex))
	case KindConductor:
		return isSmooth(b.alphaU(uv, tex), b.alphaV(uv, tex))
	default:
		return false
	}
}

const smoothThreshold = 1e-4

func isSmooth(alphaU, alphaV float32) bool {
	return alphaU <= smoothThreshold && alphaV <= smoothThreshold
}

func (b BSDF) alphaU(uv xmath.Vec2, tex texture.Table) float32 {
	if b.Roughness == texture.InvalidID {
		return 0
	}
	return roughnessToAlpha(tex.Sample(b.Roughness, uv).X)
}

func (b BSDF) alphaV(uv xmath.Vec2, tex texture.Table) float32 {
	id := b.RoughnessV
	if id == texture.InvalidID {
		id = b.Roughness
	}
	if id == texture.InvalidID {
		return 0
	}
	return roughnessToAlpha(tex.Sample(id, uv).X)
}

// roughnessToAlpha maps an artist roughness in [0,1] to the GGX alpha
// parameter (alpha = roughness^2 is the common perceptually-linear mapping).
func roughnessToAlpha(roughness float32) float32 {
	r := xmath.Clamp32(roughness, 0, 1)
	return r * r
}

// orientation carries the twosided-flip decision made once per Sample/Eval/Pdf call.
type orientation struct {
	ok  bool
	wo  xmath.Vec3
	neg bool
}

func (o orientation) unflip(wi xmath.Vec3) xmath.Vec3 {
	if o.neg {
		return xmath.Vec3{X: wi.X, Y: wi.Y, Z: -wi.Z}
	}
	return wi
}

func (o orientation) flipSame(wi xmath.Vec3) xmath.Vec3 {
	if o.neg {
		return xmath.Vec3{X: wi.X, Y: wi.Y, Z: -wi.Z}
	}
	return wi
}

func (b BSDF) orient(wo xmath.Vec3) (xmath.Vec3, orientation) {
	if wo.Z >= 0 {
		return wo, orientation{ok: true, wo: wo}
	}
	if !b.TwoSided {
		return wo, orientation{ok: false}
	}
	flipped := xmath.Vec3{X: wo.X, Y: wo.Y, Z: -wo.Z}
	return flipped, orientation{ok: true, wo: flipped, neg: true}
}

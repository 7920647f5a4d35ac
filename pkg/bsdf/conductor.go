package bsdf

import (
	"github.com/rkvale/tracecore/pkg/texture"
	"github.com/rkvale/tracecore/pkg/xmath"
)

func (b BSDF) sampleConductor(wo xmath.Vec3, uv xmath.Vec2, tex texture.Table, rng Rand) Sample {
	alphaU, alphaV := b.alphaU(uv, tex), b.alphaV(uv, tex)
	f0 := tex.Sample(b.Reflectivity, uv)
	edgeTint := tex.Sample(b.EdgeTint, uv)

	if isSmooth(alphaU, alphaV) {
		wi := xmath.Vec3{X: -wo.X, Y: -wo.Y, Z: wo.Z}
		f := fresnelConductorF82(wo.Z, f0, edgeTint)
		return Sample{Wi: wi, Value: f, Pdf: 1, Event: EventReflect, Valid: true}
	}

	u, v := rng.Get2D()
	wm := xmath.SampleGGXVNDF(wo, alphaU, alphaV, u, v)
	wi := wm.Scale(2 * wo.Dot(wm)).Sub(wo)
	if wi.Z <= 0 {
		return Sample{}
	}
	f := fresnelConductorF82(wo.Dot(wm), f0, edgeTint)
	g := ggxG(wo, wi, alphaU, alphaV)
	g1 := ggxG1(wo, alphaU, alphaV)
	pdf := ggxPdf(wo, wm, alphaU, alphaV)
	if pdf <= 0 {
		return Sample{}
	}
	return Sample{Wi: wi, Value: f.Scale(g / xmath.Max32(g1, 1e-6)), Pdf: pdf, Event: EventReflect, Valid: true}
}

func (b BSDF) evalConductor(wo, wi xmath.Vec3, uv xmath.Vec2, tex texture.Table) xmath.Vec3 {
	alphaU, alphaV := b.alphaU(uv, tex), b.alphaV(uv, tex)
	if isSmooth(alphaU, alphaV) || wi.Z <= 0 || wo.Z <= 0 {
		return xmath.Vec3{}
	}
	wm := wo.Add(wi).Normalize()
	f0 := tex.Sample(b.Reflectivity, uv)
	edgeTint := tex.Sample(b.EdgeTint, uv)
	f := fresnelConductorF82(wo.Dot(wm), f0, edgeTint)
	d := ggxD(wm, alphaU, alphaV)
	g := ggxG(wo, wi, alphaU, alphaV)
	scale := d * g / (4 * xmath.AbsCos(wo) * xmath.AbsCos(wi))
	return f.Scale(scale * xmath.AbsCos(wi))
}

func (b BSDF) pdfConductor(wo, wi xmath.Vec3, uv xmath.Vec2, tex texture.Table) float32 {
	alphaU, alphaV := b.alphaU(uv, tex), b.alphaV(uv, tex)
	if isSmooth(alphaU, alphaV) || wi.Z <= 0 || wo.Z <= 0 {
		return 0
	}
	wm := wo.Add(wi).Normalize()
	return ggxPdf(wo, wm, alphaU, alphaV)
}

package bsdf

import (
	"github.com/rkvale/tracecore/pkg/texture"
	"github.com/rkvale/tracecore/pkg/xmath"
)

// bumpEpsilon is the uv-space finite-difference step used to estimate the
// bumpmap texture's gradient.
const bumpEpsilon = 5e-4

// PerturbNormal implements spec §4.4's bumpmap convention: the shading
// normal is displaced along -dh/du*tangent - dh/dv*bitangent, the standard
// first-order bump-mapping approximation (the height field's surface
// derivative, ignoring the second-order dN/du term) — a no-op when the BSDF
// carries no bumpmap. Called once per hit, before frame construction, so
// every subsequent Sample/Eval/Pdf call already sees the perturbed normal.
func (b BSDF) PerturbNormal(normal, tangent, bitangent xmath.Vec3, uv xmath.Vec2, tex texture.Table) xmath.Vec3 {
	if b.BumpMapID == texture.InvalidID {
		return normal
	}
	h0 := tex.Sample(b.BumpMapID, uv).X
	hu := tex.Sample(b.BumpMapID, xmath.Vec2{X: uv.X + bumpEpsilon, Y: uv.Y}).X
	hv := tex.Sample(b.BumpMapID, xmath.Vec2{X: uv.X, Y: uv.Y + bumpEpsilon}).X
	dhdu := (hu - h0) / bumpEpsilon
	dhdv := (hv - h0) / bumpEpsilon

	perturbed := normal.Sub(tangent.Scale(dhdu)).Sub(bitangent.Scale(dhdv))
	if perturbed.IsZero() {
		return normal
	}
	return perturbed.Normalize()
}

package bsdf

import (
	"math"

	"github.com/rkvale/tracecore/pkg/xmath"
)

// ggxD evaluates the (anisotropic) Trowbridge-Reitz/GGX normal distribution
// at local-frame half-vector h.
func ggxD(h xmath.Vec3, alphaU, alphaV float32) float32 {
	if h.Z <= 0 {
		return 0
	}
	e := (h.X*h.X)/(alphaU*alphaU) + (h.Y*h.Y)/(alphaV*alphaV) + h.Z*h.Z
	denom := float32(math.Pi) * alphaU * alphaV * e * e
	return 1 / denom
}

// ggxLambda is the GGX auxiliary function used to build the smith masking term.
func ggxLambda(w xmath.Vec3, alphaU, alphaV float32) float32 {
	if w.Z == 0 {
		return 0
	}
	cosTheta2 := w.Z * w.Z
	sinTheta2 := xmath.Max32(0, 1-cosTheta2)
	if sinTheta2 <= 0 {
		return 0
	}
	tan2Theta := sinTheta2 / cosTheta2
	cosPhi2, sinPhi2 := phiSquares(w)
	alpha2 := cosPhi2*alphaU*alphaU + sinPhi2*alphaV*alphaV
	return (float32(math.Sqrt(float64(1+alpha2*tan2Theta))) - 1) / 2
}

func phiSquares(w xmath.Vec3) (cosPhi2, sinPhi2 float32) {
	sinTheta := float32(math.Sqrt(float64(xmath.Max32(0, 1-w.Z*w.Z))))
	if sinTheta == 0 {
		return 1, 0
	}
	cosPhi := xmath.Clamp32(w.X/sinTheta, -1, 1)
	sinPhi := xmath.Clamp32(w.Y/sinTheta, -1, 1)
	return cosPhi * cosPhi, sinPhi * sinPhi
}

// ggxG1 is the Smith masking function for a single direction.
func ggxG1(w xmath.Vec3, alphaU, alphaV float32) float32 {
	return 1 / (1 + ggxLambda(w, alphaU, alphaV))
}

// ggxG is the Smith height-correlated joint masking-shadowing term for
// (wo, wi), used to weight a VNDF sample by G(wo,wi)/G1(wo) per spec §4.4.
func ggxG(wo, wi xmath.Vec3, alphaU, alphaV float32) float32 {
	return 1 / (1 + ggxLambda(wo, alphaU, alphaV) + ggxLambda(wi, alphaU, alphaV))
}

// ggxPdf is the VNDF sampling pdf for half-vector h given outgoing wo:
// pdf(h) = G1(wo) * D(h) * max(0,dot(wo,h)) / |wo.z|, converted to a
// solid-angle pdf over wi via the 1/(4*dot(wo,h)) reflection Jacobian.
func ggxPdf(wo, h xmath.Vec3, alphaU, alphaV float32) float32 {
	g1 := ggxG1(wo, alphaU, alphaV)
	d := ggxD(h, alphaU, alphaV)
	voh := xmath.Max32(0, wo.Dot(h))
	if wo.Z == 0 {
		return 0
	}
	pdfH := g1 * d * voh / xmath.AbsCos(wo)
	return pdfH / (4 * voh)
}

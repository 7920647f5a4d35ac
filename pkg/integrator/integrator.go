// Package integrator implements the core's two light-transport estimators,
// Path (surface-only) and VolPath (homogeneous participating media), both
// combining next-event estimation with bsdf sampling under multiple
// importance sampling, plus Russian-roulette termination.
package integrator

import (
	"github.com/rkvale/tracecore/pkg/scene"
	"github.com/rkvale/tracecore/pkg/xmath"
)

// Rand is the randomness surface an estimator needs; satisfied directly by
// *xrand.Stream. Kept local and narrow the way pkg/bsdf/pkg/scene do, so
// this package never imports the concrete RNG type.
type Rand interface {
	Get1D() float32
	Get2D() (float32, float32)
}

// Stats accumulates render-time numeric-anomaly counters. Unlike
// internal/rerr's build-time taxonomy, a NaN/Inf radiance estimate during
// rendering is not fatal: the sample is discarded and counted here instead.
type Stats struct {
	NumericFailures uint64
}

// sanitize discards a bad (NaN/Inf) radiance estimate, incrementing st.
func (st *Stats) sanitize(v xmath.Vec3) xmath.Vec3 {
	if v.HasNaNOrInf() {
		st.NumericFailures++
		return xmath.Vec3{}
	}
	return v
}

// betaCap bounds the path throughput before every Russian-roulette test,
// per spec's "cap β at a finite value before RR to prevent NaN propagation."
const betaCap = 1e6

func capBeta(beta xmath.Vec3) xmath.Vec3 {
	return beta.Clamp(0, betaCap)
}

// misWeightBalance is the balance heuristic: pdfA's share of the combined
// sampling density. Returns 0 when both densities are non-positive rather
// than dividing by zero.
func misWeightBalance(pdfA, pdfB float32) float32 {
	sum := pdfA + pdfB
	if sum <= 0 {
		return 0
	}
	return pdfA / sum
}

// shadowEpsilon shortens a shadow ray's far bound so it doesn't re-hit the
// light's own surface at t==distance due to floating point error.
const shadowEpsilon = 1e-3

// Render dispatches a single camera sub-sample to the scene's configured
// estimator, returning a radiance estimate in linear RGB.
func Render(s *scene.Scene, ray xmath.Ray, rng Rand, stats *Stats) xmath.Vec3 {
	var l xmath.Vec3
	switch s.Integrator.Kind {
	case scene.IntegratorVolPath:
		l = renderVolPath(s, ray, rng)
	default:
		l = renderPath(s, ray, rng)
	}
	return stats.sanitize(l)
}

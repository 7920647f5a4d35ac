package emitter

import (
	"github.com/rkvale/tracecore/pkg/texture"
	"github.com/rkvale/tracecore/pkg/xmath"
)

// Sample dispatches to the variant's sampler. origin is the shading point in
// world space; u,v are independent uniform draws.
func (e *Emitter) Sample(origin xmath.Vec3, u, v float32, tex texture.Table) Sample {
	switch e.Kind {
	case KindPoint:
		return e.samplePoint(origin)
	case KindSpot:
		return e.sampleSpot(origin, tex)
	case KindDirectional:
		return e.sampleDirectional()
	case KindSun:
		return e.sampleSun(u, v, tex)
	case KindEnvMap:
		return e.sampleEnvMap(u, v)
	case KindConstant:
		return e.sampleConstant(u, v)
	default:
		return Sample{}
	}
}

// Eval evaluates incoming radiance along wi; only meaningful for non-delta
// emitters (EnvMap, Constant) — delta emitters return zero, matching "a
// camera ray can never land exactly on a point/spot/directional/sun source".
func (e *Emitter) Eval(wi xmath.Vec3) xmath.Vec3 {
	switch e.Kind {
	case KindEnvMap:
		return e.evalEnvMap(wi)
	case KindConstant:
		return e.ConstantRadiance
	default:
		return xmath.Vec3{}
	}
}

// Pdf returns the solid-angle sampling density for wi; zero for delta emitters.
func (e *Emitter) Pdf(wi xmath.Vec3) float32 {
	switch e.Kind {
	case KindEnvMap:
		return e.pdfEnvMap(wi)
	case KindConstant:
		return 1 / (4 * float32(xmath.Pi))
	default:
		return 0
	}
}

func (e *Emitter) IsDelta() bool {
	switch e.Kind {
	case KindPoint, KindSpot, KindDirectional, KindSun:
		return true
	default:
		return false
	}
}

// Table owns a scene's emitter array and implements the uniform discrete
// emitter-selection policy spec §4.5 allows in place of area/luminance
// weighting.
type Table struct {
	Emitters []Emitter
}

func (t *Table) Count() int { return len(t.Emitters) }

// SelectUniform picks one emitter uniformly via u ∈ [0,1) and returns it
// along with the selection pdf 1/N.
func (t *Table) SelectUniform(u float32) (*Emitter, float32, int) {
	n := len(t.Emitters)
	if n == 0 {
		return nil, 0, -1
	}
	i := int(u * float32(n))
	if i >= n {
		i = n - 1
	}
	return &t.Emitters[i], 1 / float32(n), i
}

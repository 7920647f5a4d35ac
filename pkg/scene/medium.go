package scene

import (
	"math"

	"github.com/rkvale/tracecore/pkg/xmath"
)

// Medium is a built homogeneous participating medium, with SigmaT
// precomputed once at build time since every free-flight sample needs it.
type Medium struct {
	SigmaA xmath.Vec3
	SigmaS xmath.Vec3
	SigmaT xmath.Vec3
	Phase  PhaseKind
	G      float32
}

func buildMedium(cfg MediumConfig) Medium {
	return Medium{
		SigmaA: cfg.SigmaA,
		SigmaS: cfg.SigmaS,
		SigmaT: cfg.SigmaA.Add(cfg.SigmaS),
		Phase:  cfg.Phase,
		G:      cfg.G,
	}
}

// PhasePdf returns the phase function's density at cosTheta between the
// incoming and sampled direction, in the local frame with the incoming
// direction along +Z.
func (m Medium) PhasePdf(cosTheta float32) float32 {
	switch m.Phase {
	case PhaseHenyeyGreenstein:
		return hgPdf(cosTheta, m.G)
	default:
		return 1 / (4 * float32(xmath.Pi))
	}
}

func hgPdf(cosTheta, g float32) float32 {
	denom := 1 + g*g - 2*g*cosTheta
	if denom <= 0 {
		return 0
	}
	denom32 := float32(math.Pow(float64(denom), 1.5))
	return (1 - g*g) / (4 * float32(xmath.Pi) * denom32)
}

// SampleHG draws cosTheta from the Henyey-Greenstein phase function via its
// standard closed-form inverse-CDF.
func SampleHG(g, u float32) float32 {
	if g > -1e-3 && g < 1e-3 {
		return 1 - 2*u
	}
	sq := (1 - g*g) / (1 + g - 2*g*u)
	return (1 + g*g - sq*sq) / (2 * g)
}

// Package emitter implements the closed set of light sources the core
// supports: Point, Spot, Directional, Sun, EnvMap, and Constant. Like
// pkg/bsdf, each variant is a tagged union rather than an interface
// implementation, dispatched through Kind.
package emitter

import (
	"github.com/rkvale/tracecore/pkg/texture"
	"github.com/rkvale/tracecore/pkg/xmath"
)

// ID indexes into a scene's emitter table.
type ID uint32

const InvalidID ID = ^ID(0)

type Kind uint8

const (
	KindPoint Kind = iota
	KindSpot
	KindDirectional
	KindSun
	KindEnvMap
	KindConstant
)

// Emitter is a tagged union over the closed light variant set.
type Emitter struct {
	Kind Kind

	// Point / Spot
	Position  xmath.Vec3
	Intensity xmath.Vec3

	// Spot
	SpotTexture         texture.ID
	BeamWidthCos        float32 // cos(beam_width), inner cone
	CutoffAngleCos       float32 // cos(cutoff_angle), outer cone
	SpotDirection       xmath.Vec3

	// Directional / Sun
	Direction      xmath.Vec3 // light travels along +Direction, arrives from -Direction
	Radiance       xmath.Vec3
	CosCutoffAngle float32    // Sun only: cosine of the sun disc's half-angle; not read by sampleSun
	SunDiscTexture texture.ID // Sun only: disc texture indexed by local disc uv

	// EnvMap
	Env *EnvMap

	// Constant
	ConstantRadiance xmath.Vec3
}

// Sample is the result of sampling an emitter toward a shading point.
type Sample struct {
	Wi       xmath.Vec3 // unit direction, origin -> light
	Distance float32
	Value    xmath.Vec3 // radiance arriving per unit solid angle, divided by pdf
	Delta    bool        // true for point-measure (delta) emitters
	Pdf      float32     // area-or-solid-angle pdf, 0 for delta emitters
	Valid    bool
}

const maxFloat32 = xmath.MaxFloat32

// Package bsdf implements the closed set of scattering models the core
// supports: Diffuse, RoughDiffuse, Dielectric, ThinDielectric, Conductor,
// Plastic, and AreaLight. Every variant is dispatched through a tagged
// union (spec design note: "tagged variants over inheritance") rather than
// an interface, so the hot path never pays for a virtual call and variant
// parameters stay inline with the BSDF value instead of behind a pointer.
package bsdf

import (
	"github.com/rkvale/tracecore/pkg/texture"
	"github.com/rkvale/tracecore/pkg/xmath"
)

// ID indexes into a scene's BSDF table. InvalidID marks "absent" (used for
// instances that only carry an area-light wrapper, never a surface BSDF).
type ID uint32

const InvalidID ID = ^ID(0)

// Kind tags the closed BSDF variant set.
type Kind uint8

const (
	KindDiffuse Kind = iota
	KindRoughDiffuse
	KindDielectric
	KindThinDielectric
	KindConductor
	KindPlastic
	KindAreaLight
)

// Event classifies what a Sample produced, mirroring the spec's
// Reflect/Transmit/Null taxonomy (Null is an opacity pass-through).
type Event uint8

const (
	EventReflect Event = iota
	EventTransmit
	EventNull
)

// BSDF is a tagged union carrying every variant's parameters inline.
// Texture references are ids into the scene's texture.Table.
type BSDF struct {
	Kind      Kind
	TwoSided  bool
	OpacityID texture.ID
	BumpMapID texture.ID

	// Diffuse / Plastic diffuse lobe / RoughDiffuse
	Reflectance texture.ID
	Roughness   texture.ID // RoughDiffuse sigma, or Dielectric/Conductor/Plastic alpha source
	RoughnessV  texture.ID // anisotropic roughness_v; InvalidID => isotropic (= Roughness)
	UseFastOrenNayarApprox bool

	// Dielectric / ThinDielectric / Plastic
	Eta                    float32 // int_ior / ext_ior
	SpecularReflectance    texture.ID
	SpecularTransmittance  texture.ID

	// Conductor
	Reflectivity texture.ID // F0, RGB
	EdgeTint     texture.ID // RGB

	// AreaLight
	Radiance texture.ID
	Weight   float32
}

// Sample is the Monte Carlo scatter event: wi is the sampled direction in
// the local shading frame, Value is the already-divided weight
// f(wo,wi)*|cosθ_i|/pdf, and Pdf is the solid-angle density of wi. For a
// delta event (mirror reflection, smooth refraction, opacity pass-through)
// Pdf holds the discrete probability with which that lobe was chosen, and
// Value alone carries the correct contribution.
type Sample struct {
	Wi    xmath.Vec3
	Value xmath.Vec3
	Pdf   float32
	Event Event
	Valid bool
}

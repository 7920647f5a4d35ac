package scene

import (
	"github.com/rkvale/tracecore/pkg/bsdf"
	"github.com/rkvale/tracecore/pkg/emitter"
	"github.com/rkvale/tracecore/pkg/primitive"
	"github.com/rkvale/tracecore/pkg/texture"
	"github.com/rkvale/tracecore/pkg/xmath"
)

// IntegratorKind selects the light-transport estimator Build wires up.
type IntegratorKind uint8

const (
	IntegratorPath IntegratorKind = iota
	IntegratorVolPath
)

// PhaseKind tags the closed phase-function set a homogeneous medium uses.
type PhaseKind uint8

const (
	PhaseIsotropic PhaseKind = iota
	PhaseHenyeyGreenstein
)

// CameraConfig mirrors the camera fields the data model names: eye, look-at,
// up, a horizontal field of view in radians, an output resolution, and
// samples per pixel.
type CameraConfig struct {
	Eye    xmath.Vec3
	LookAt xmath.Vec3
	Up     xmath.Vec3
	FovX   float32
	Width  int
	Height int
	SPP    int
}

// IntegratorConfig carries the knobs §6 lists as configuration surface.
type IntegratorConfig struct {
	Kind         IntegratorKind
	DepthMax     uint32
	DepthRR      uint32
	PdfRR        float32
	HideEmitters bool
}

// MediumID indexes into a scene's medium table. InvalidMediumID marks
// "vacuum" (no participating medium on that side of a boundary).
type MediumID uint32

const InvalidMediumID MediumID = ^MediumID(0)

// MediumConfig is a homogeneous participating medium: constant absorption
// and scattering coefficients plus a phase function.
type MediumConfig struct {
	SigmaA xmath.Vec3
	SigmaS xmath.Vec3
	Phase  PhaseKind
	G      float32 // Henyey-Greenstein asymmetry parameter, ignored for Isotropic
}

// InstanceConfig describes one geometry instance before Build resolves it
// into a primitive.Primitive plus a baked BLAS and world transforms.
type InstanceConfig struct {
	Kind        primitive.Kind
	FlipNormals bool

	// Sphere
	Center xmath.Vec3
	Radius float32

	// Cube / Rectangle
	HalfExtent xmath.Vec3

	// Disk / Cylinder
	Height float32

	// Mesh
	Mesh *primitive.Mesh

	ToWorld   xmath.Mat4
	BSDFID    bsdf.ID
	MediumInt MediumID
	MediumExt MediumID
}

// SceneConfig is the sole input to Build — the resolved, already-parsed
// scene description consumed by the core (spec's external-interfaces
// contract: no file parsing, no env vars, no CLI surface in this package).
type SceneConfig struct {
	Camera     CameraConfig
	Integrator IntegratorConfig
	Textures   []texture.Texture
	BSDFs      []bsdf.BSDF
	Media      []MediumConfig
	Instances  []InstanceConfig
	Emitters   []emitter.Emitter
}

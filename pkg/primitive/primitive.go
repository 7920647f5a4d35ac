// Package primitive implements the closed set of intersectable shapes a
// BLAS leaf can hold: Sphere, Cube, Rectangle, Disk, Cylinder, and triangle
// Mesh. Every Intersect returns a LocalHit in the primitive's own local
// (instance) space — the caller (pkg/accel's TLAS) is responsible for
// transforming the result into world space.
package primitive

import "github.com/rkvale/tracecore/pkg/xmath"

type Kind uint8

const (
	KindSphere Kind = iota
	KindCube
	KindRectangle
	KindDisk
	KindCylinder
	KindMesh
)

// Primitive is a tagged union over the closed shape set. FlipNormals XORs
// both the geometric and shading normal at the end of Intersect.
type Primitive struct {
	Kind        Kind
	FlipNormals bool

	// Sphere
	Center xmath.Vec3
	Radius float32

	// Cube / Rectangle: half-extents about the local origin.
	HalfExtent xmath.Vec3

	// Disk / Cylinder
	Height float32 // Cylinder

	// Mesh
	Mesh *Mesh
}

// Mesh owns triangle vertex/index/uv/normal/tangent buffers for a single
// instance-local triangle soup, addressed by the BLAS leaf's primitive index.
type Mesh struct {
	Positions []xmath.Vec3
	Normals   []xmath.Vec3 // optional, len 0 => derive from face normal
	UVs       []xmath.Vec2 // optional, len 0 => (0,0)
	Tangents  []xmath.Vec3 // optional, len 0 => derive from uv gradient
	Indices   []uint32     // 3 per triangle
}

func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// LocalHit is the intersection record a primitive returns in local space:
// geometric normal, shading normal (possibly interpolated/perturbed),
// texture uv, and a tangent/bitangent pair forming a right-handed frame
// with the shading normal.
type LocalHit struct {
	T               float32
	Point           xmath.Vec3
	GeometricNormal xmath.Vec3
	ShadingNormal   xmath.Vec3
	UV              xmath.Vec2
	Tangent         xmath.Vec3
	Bitangent       xmath.Vec3
	FrontFace       bool
	Valid           bool

	// TriangleIndex identifies which mesh triangle produced the hit, used
	// only by area-light pdf bookkeeping (pkg/scene); analytic shapes leave
	// it at 0.
	TriangleIndex int32
}

// orientNormal applies flip_normals and derives FrontFace/sign the way
// df07's HitRecord.SetFaceNormal does, generalized to also carry a shading
// normal and to XOR in flip_normals before the front/back decision.
func orientNormal(rayDir, geomNormal xmath.Vec3, flip bool) (oriented xmath.Vec3, frontFace bool) {
	if flip {
		geomNormal = geomNormal.Neg()
	}
	frontFace = rayDir.Dot(geomNormal) < 0
	if frontFace {
		return geomNormal, true
	}
	return geomNormal.Neg(), false
}

func (p *Primitive) Intersect(ray xmath.Ray) LocalHit {
	switch p.Kind {
	case KindSphere:
		return p.intersectSphere(ray)
	case KindCube:
		return p.intersectCube(ray)
	case KindRectangle:
		return p.intersectRectangle(ray)
	case KindDisk:
		return p.intersectDisk(ray)
	case KindCylinder:
		return p.intersectCylinder(ray)
	case KindMesh:
		return p.intersectMesh(ray)
	default:
		return LocalHit{}
	}
}

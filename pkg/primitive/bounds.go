package primitive

import "github.com/rkvale/tracecore/pkg/xmath"

// Bounds returns the primitive's local-space axis-aligned bounding box,
// used by pkg/accel's builder for both per-instance BLAS leaves (the
// non-mesh kinds are always a single leaf) and the instance's world AABB
// after the to_world transform is applied.
func (p *Primitive) Bounds() (min, max xmath.Vec3) {
	switch p.Kind {
	case KindSphere:
		r := xmath.Vec3{X: p.Radius, Y: p.Radius, Z: p.Radius}
		return p.Center.Sub(r), p.Center.Add(r)
	case KindCube:
		return p.HalfExtent.Neg(), p.HalfExtent
	case KindRectangle:
		return xmath.Vec3{X: -p.HalfExtent.X, Y: -p.HalfExtent.Y, Z: 0}, xmath.Vec3{X: p.HalfExtent.X, Y: p.HalfExtent.Y, Z: 0}
	case KindDisk:
		return xmath.Vec3{X: -p.Radius, Y: -p.Radius, Z: 0}, xmath.Vec3{X: p.Radius, Y: p.Radius, Z: 0}
	case KindCylinder:
		return xmath.Vec3{X: -p.Radius, Y: -p.Radius, Z: 0}, xmath.Vec3{X: p.Radius, Y: p.Radius, Z: p.Height}
	case KindMesh:
		return p.Mesh.bounds()
	default:
		return xmath.Vec3{}, xmath.Vec3{}
	}
}

func (m *Mesh) bounds() (min, max xmath.Vec3) {
	if len(m.Positions) == 0 {
		return xmath.Vec3{}, xmath.Vec3{}
	}
	min, max = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		min = xmath.MinVec3(min, p)
		max = xmath.MaxVec3(max, p)
	}
	return min, max
}

// TriangleBounds returns a single triangle's local AABB, used to build the
// per-instance BLAS over a mesh's triangle soup.
func (m *Mesh) TriangleBounds(tri int) (min, max xmath.Vec3) {
	i0, i1, i2 := m.Indices[tri*3], m.Indices[tri*3+1], m.Indices[tri*3+2]
	v0, v1, v2 := m.Positions[i0], m.Positions[i1], m.Positions[i2]
	min = xmath.MinVec3(xmath.MinVec3(v0, v1), v2)
	max = xmath.MaxVec3(xmath.MaxVec3(v0, v1), v2)
	return min, max
}

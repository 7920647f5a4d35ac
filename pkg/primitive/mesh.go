package primitive

import "github.com/rkvale/tracecore/pkg/xmath"

// watertightEpsilon guards the Möller-Trumbore determinant test against
// grazing rays that would otherwise pass through shared triangle edges
// (the "watertight" variant spec §4.6 asks for).
const watertightEpsilon = 1e-8

func (p *Primitive) intersectMesh(ray xmath.Ray) LocalHit {
	m := p.Mesh
	if m == nil {
		return LocalHit{}
	}
	best := LocalHit{T: ray.TMax}
	found := false
	for tri := 0; tri < m.TriangleCount(); tri++ {
		if hit, ok := m.intersectTriangle(ray, tri, best.T); ok {
			best = hit
			found = true
		}
	}
	if !found {
		return LocalHit{}
	}
	best.GeometricNormal, best.FrontFace = orientNormal(ray.Direction, best.GeometricNormal, p.FlipNormals)
	if p.FlipNormals {
		best.ShadingNormal = best.ShadingNormal.Neg()
	}
	if !best.FrontFace {
		best.ShadingNormal = best.ShadingNormal.Neg()
	}
	best.Valid = true
	return best
}

func (m *Mesh) intersectTriangle(ray xmath.Ray, tri int, tMax float32) (LocalHit, bool) {
	i0, i1, i2 := m.Indices[tri*3], m.Indices[tri*3+1], m.Indices[tri*3+2]
	v0, v1, v2 := m.Positions[i0], m.Positions[i1], m.Positions[i2]

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	faceNormal := edge1.Cross(edge2)
	if faceNormal.LengthSquared() < 1e-20 {
		return LocalHit{}, false // degenerate (zero-area) triangle, dropped per spec §4.7
	}

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -watertightEpsilon && a < watertightEpsilon {
		return LocalHit{}, false
	}
	f := 1 / a
	s := ray.Origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return LocalHit{}, false
	}
	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return LocalHit{}, false
	}
	t := f * edge2.Dot(q)
	if t < ray.TMin || t > tMax {
		return LocalHit{}, false
	}
	w := 1 - u - v

	normal := faceNormal.Normalize()
	shading := normal
	if len(m.Normals) > 0 {
		n0, n1, n2 := m.Normals[i0], m.Normals[i1], m.Normals[i2]
		shading = n0.Scale(w).Add(n1.Scale(u)).Add(n2.Scale(v)).Normalize()
	}

	var uv xmath.Vec2
	if len(m.UVs) > 0 {
		uv0, uv1, uv2 := m.UVs[i0], m.UVs[i1], m.UVs[i2]
		uv = xmath.Vec2{
			X: uv0.X*w + uv1.X*u + uv2.X*v,
			Y: uv0.Y*w + uv1.Y*u + uv2.Y*v,
		}
	}

	tangent := triangleTangent(m, i0, i1, i2, v0, v1, v2, uv0uv1uv2(m, i0, i1, i2), shading)
	bitangent := shading.Cross(tangent)

	return LocalHit{
		T: t, Point: ray.At(t), GeometricNormal: normal, ShadingNormal: shading,
		UV: uv, Tangent: tangent, Bitangent: bitangent, TriangleIndex: int32(tri),
	}, true
}

// IntersectMeshTriangle tests ray against a single triangle of the
// primitive's mesh, applying the same flip_normals/front-face orientation
// intersectMesh applies to its closest-hit result. Used by pkg/scene's BLAS
// leaf adapter, which holds a real per-triangle SAH tree rather than
// delegating the whole mesh scan to Intersect.
func (p *Primitive) IntersectMeshTriangle(ray xmath.Ray, tri int) LocalHit {
	if p.Mesh == nil || tri < 0 || tri >= p.Mesh.TriangleCount() {
		return LocalHit{}
	}
	hit, ok := p.Mesh.intersectTriangle(ray, tri, ray.TMax)
	if !ok {
		return LocalHit{}
	}
	hit.GeometricNormal, hit.FrontFace = orientNormal(ray.Direction, hit.GeometricNormal, p.FlipNormals)
	if p.FlipNormals {
		hit.ShadingNormal = hit.ShadingNormal.Neg()
	}
	if !hit.FrontFace {
		hit.ShadingNormal = hit.ShadingNormal.Neg()
	}
	hit.Valid = true
	return hit
}

func uv0uv1uv2(m *Mesh, i0, i1, i2 uint32) [3]xmath.Vec2 {
	if len(m.UVs) == 0 {
		return [3]xmath.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	}
	return [3]xmath.Vec2{m.UVs[i0], m.UVs[i1], m.UVs[i2]}
}

// triangleTangent returns the first vertex's tangent (m.Tangents[i0]) if
// vertex tangents are present; the tangents are not interpolated across the
// triangle. Otherwise it derives a tangent from the uv gradient, falling
// back to an arbitrary frame when the uv gradient is degenerate.
func triangleTangent(m *Mesh, i0, i1, i2 uint32, v0, v1, v2 xmath.Vec3, uv [3]xmath.Vec2, shading xmath.Vec3) xmath.Vec3 {
	if len(m.Tangents) > 0 {
		return m.Tangents[i0].Normalize()
	}

	e1, e2 := v1.Sub(v0), v2.Sub(v0)
	du1, dv1 := uv[1].X-uv[0].X, uv[1].Y-uv[0].Y
	du2, dv2 := uv[2].X-uv[0].X, uv[2].Y-uv[0].Y
	det := du1*dv2 - du2*dv1
	if det > -1e-10 && det < 1e-10 {
		return xmath.FrameFromNormal(shading).T
	}
	invDet := 1 / det
	tangent := e1.Scale(dv2 * invDet).Sub(e2.Scale(dv1 * invDet))
	if tangent.LengthSquared() < 1e-20 {
		return xmath.FrameFromNormal(shading).T
	}
	// Gram-Schmidt orthogonalize against the shading normal.
	tangent = tangent.Sub(shading.Scale(shading.Dot(tangent))).Normalize()
	return tangent
}

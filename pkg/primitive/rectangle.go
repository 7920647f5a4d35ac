package primitive

import "github.com/rkvale/tracecore/pkg/xmath"

// intersectRectangle treats Rectangle as an axis-aligned quad in the local
// Z=0 plane, spanning [-HalfExtent.X,HalfExtent.X] x [-HalfExtent.Y,HalfExtent.Y],
// matching the plane-intersection-then-bounds-check shape of df07's Quad.Hit
// but specialized to an axis-aligned local plane since rotation lives in the
// instance transform, not the primitive itself.
func (p *Primitive) intersectRectangle(ray xmath.Ray) LocalHit {
	if ray.Direction.Z == 0 {
		return LocalHit{}
	}
	t := -ray.Origin.Z / ray.Direction.Z
	if t < ray.TMin || t > ray.TMax {
		return LocalHit{}
	}
	point := ray.At(t)
	if point.X < -p.HalfExtent.X || point.X > p.HalfExtent.X || point.Y < -p.HalfExtent.Y || point.Y > p.HalfExtent.Y {
		return LocalHit{}
	}

	outward := xmath.Vec3{Z: 1}
	normal, front := orientNormal(ray.Direction, outward, p.FlipNormals)
	uv := xmath.Vec2{X: (point.X/p.HalfExtent.X + 1) / 2, Y: (point.Y/p.HalfExtent.Y + 1) / 2}

	return LocalHit{
		T: t, Point: point, GeometricNormal: normal, ShadingNormal: normal,
		UV: uv, Tangent: xmath.Vec3{X: 1}, Bitangent: xmath.Vec3{Y: 1}, FrontFace: front, Valid: true,
	}
}

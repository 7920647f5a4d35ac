package primitive

import (
	"math"

	"github.com/rkvale/tracecore/pkg/xmath"
)

// intersectDisk is a circular disk of Radius in the local Z=0 plane,
// grounded on df07's Disc.Hit plane-then-radius-check shape.
func (p *Primitive) intersectDisk(ray xmath.Ray) LocalHit {
	if ray.Direction.Z == 0 {
		return LocalHit{}
	}
	t := -ray.Origin.Z / ray.Direction.Z
	if t < ray.TMin || t > ray.TMax {
		return LocalHit{}
	}
	point := ray.At(t)
	r2 := point.X*point.X + point.Y*point.Y
	if r2 > p.Radius*p.Radius {
		return LocalHit{}
	}

	outward := xmath.Vec3{Z: 1}
	normal, front := orientNormal(ray.Direction, outward, p.FlipNormals)

	r := float32(math.Sqrt(float64(r2)))
	phi := float32(math.Atan2(float64(point.Y), float64(point.X)))
	if phi < 0 {
		phi += float32(xmath.Pi2)
	}
	uv := xmath.Vec2{X: phi / float32(xmath.Pi2), Y: r / p.Radius}

	tangent := xmath.Vec3{X: 1}
	if r > 1e-6 {
		tangent = xmath.Vec3{X: -point.Y / r, Y: point.X / r}
	}
	bitangent := normal.Cross(tangent)

	return LocalHit{
		T: t, Point: point, GeometricNormal: normal, ShadingNormal: normal,
		UV: uv, Tangent: tangent, Bitangent: bitangent, FrontFace: front, Valid: true,
	}
}

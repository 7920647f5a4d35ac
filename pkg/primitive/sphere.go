package primitive

import (
	"math"

	"github.com/rkvale/tracecore/pkg/xmath"
)

func (p *Primitive) intersectSphere(ray xmath.Ray) LocalHit {
	oc := ray.Origin.Sub(p.Center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - p.Radius*p.Radius
	disc := halfB*halfB - a*c
	if disc < 0 {
		return LocalHit{}
	}
	sqrtD := float32(math.Sqrt(float64(disc)))

	root := (-halfB - sqrtD) / a
	if root < ray.TMin || root > ray.TMax {
		root = (-halfB + sqrtD) / a
		if root < ray.TMin || root > ray.TMax {
			return LocalHit{}
		}
	}

	point := ray.At(root)
	outward := point.Sub(p.Center).Scale(1 / p.Radius)
	normal, front := orientNormal(ray.Direction, outward, p.FlipNormals)

	theta := float32(math.Acos(float64(xmath.Clamp32(outward.Y, -1, 1))))
	phi := float32(math.Atan2(float64(outward.Z), float64(outward.X)))
	if phi < 0 {
		phi += float32(xmath.Pi2)
	}
	uv := xmath.Vec2{X: phi / float32(xmath.Pi2), Y: theta / float32(xmath.Pi)}

	tangent := xmath.Vec3{X: -outward.Z, Y: 0, Z: outward.X}
	if tangent.LengthSquared() < 1e-12 {
		tangent = xmath.Vec3{X: 1, Y: 0, Z: 0}
	} else {
		tangent = tangent.Normalize()
	}
	bitangent := normal.Cross(tangent)

	return LocalHit{
		T: root, Point: point, GeometricNormal: normal, ShadingNormal: normal,
		UV: uv, Tangent: tangent, Bitangent: bitangent, FrontFace: front, Valid: true,
	}
}

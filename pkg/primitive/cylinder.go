package primitive

import (
	"math"

	"github.com/rkvale/tracecore/pkg/xmath"
)

// intersectCylinder is an open-ended (no caps) finite cylinder of Radius
// along the local Z axis from z=0 to z=Height, grounded on df07's
// open-ended Cylinder.Hit quadratic-in-the-radial-plane shape, specialized
// to a local axis since arbitrary base/top axes live in the instance
// transform.
func (p *Primitive) intersectCylinder(ray xmath.Ray) LocalHit {
	ox, oy := ray.Origin.X, ray.Origin.Y
	dx, dy := ray.Direction.X, ray.Direction.Y

	a := dx*dx + dy*dy
	if a < 1e-12 {
		return LocalHit{}
	}
	b := 2 * (ox*dx + oy*dy)
	c := ox*ox + oy*oy - p.Radius*p.Radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return LocalHit{}
	}
	sqrtD := float32(math.Sqrt(float64(disc)))

	t0 := (-b - sqrtD) / (2 * a)
	t1 := (-b + sqrtD) / (2 * a)

	t, ok := cylinderPickRoot(ray, t0)
	if !ok {
		t, ok = cylinderPickRoot(ray, t1)
	}
	if !ok {
		return LocalHit{}
	}

	point := ray.At(t)
	if point.Z < 0 || point.Z > p.Height {
		// Root was within the infinite cylinder but outside the cap range;
		// try the other root once before giving up.
		other := t1
		if t == t1 {
			other = t0
		}
		t, ok = cylinderPickRoot(ray, other)
		if !ok {
			return LocalHit{}
		}
		point = ray.At(t)
		if point.Z < 0 || point.Z > p.Height {
			return LocalHit{}
		}
	}

	outward := xmath.Vec3{X: point.X / p.Radius, Y: point.Y / p.Radius}
	normal, front := orientNormal(ray.Direction, outward, p.FlipNormals)

	phi := float32(math.Atan2(float64(point.Y), float64(point.X)))
	if phi < 0 {
		phi += float32(xmath.Pi2)
	}
	uv := xmath.Vec2{X: phi / float32(xmath.Pi2), Y: point.Z / p.Height}

	tangent := xmath.Vec3{X: -outward.Y, Y: outward.X}
	bitangent := normal.Cross(tangent)

	return LocalHit{
		T: t, Point: point, GeometricNormal: normal, ShadingNormal: normal,
		UV: uv, Tangent: tangent, Bitangent: bitangent, FrontFace: front, Valid: true,
	}
}

func cylinderPickRoot(ray xmath.Ray, t float32) (float32, bool) {
	return t, t >= ray.TMin && t <= ray.TMax
}

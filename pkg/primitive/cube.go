package primitive

import "github.com/rkvale/tracecore/pkg/xmath"

// intersectCube slab-tests against an axis-aligned box of half-extents
// HalfExtent centered at the local origin, tracking which face (and hence
// which axis/uv mapping) produced the closest t, same two-plane-per-axis
// shape as the AABB slab test but additionally recording the hit axis.
func (p *Primitive) intersectCube(ray xmath.Ray) LocalHit {
	tMin, tMax := ray.TMin, ray.TMax
	hitAxis, hitSign := -1, float32(1)

	for axis := 0; axis < 3; axis++ {
		origin, dir, half := component(ray.Origin, axis), component(ray.Direction, axis), component(p.HalfExtent, axis)
		if dir == 0 {
			if origin < -half || origin > half {
				return LocalHit{}
			}
			continue
		}
		invD := 1 / dir
		t0 := (-half - origin) * invD
		t1 := (half - origin) * invD
		sign := float32(-1)
		if t0 > t1 {
			t0, t1 = t1, t0
			sign = 1
		}
		if t0 > tMin {
			tMin = t0
			hitAxis = axis
			hitSign = sign
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return LocalHit{}
		}
	}
	if hitAxis < 0 || tMin < ray.TMin || tMin > ray.TMax {
		return LocalHit{}
	}

	point := ray.At(tMin)
	var outward xmath.Vec3
	switch hitAxis {
	case 0:
		outward = xmath.Vec3{X: hitSign}
	case 1:
		outward = xmath.Vec3{Y: hitSign}
	default:
		outward = xmath.Vec3{Z: hitSign}
	}
	normal, front := orientNormal(ray.Direction, outward, p.FlipNormals)

	u, v := cubeFaceUV(point, hitAxis, p.HalfExtent)
	tangent, bitangent := cubeFaceTangents(hitAxis)

	return LocalHit{
		T: tMin, Point: point, GeometricNormal: normal, ShadingNormal: normal,
		UV: xmath.Vec2{X: u, Y: v}, Tangent: tangent, Bitangent: bitangent, FrontFace: front, Valid: true,
	}
}

func component(v xmath.Vec3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func cubeFaceUV(point xmath.Vec3, axis int, half xmath.Vec3) (u, v float32) {
	switch axis {
	case 0:
		return (point.Z/half.Z + 1) / 2, (point.Y/half.Y + 1) / 2
	case 1:
		return (point.X/half.X + 1) / 2, (point.Z/half.Z + 1) / 2
	default:
		return (point.X/half.X + 1) / 2, (point.Y/half.Y + 1) / 2
	}
}

func cubeFaceTangents(axis int) (tangent, bitangent xmath.Vec3) {
	switch axis {
	case 0:
		return xmath.Vec3{Z: 1}, xmath.Vec3{Y: 1}
	case 1:
		return xmath.Vec3{X: 1}, xmath.Vec3{Z: 1}
	default:
		return xmath.Vec3{X: 1}, xmath.Vec3{Y: 1}
	}
}

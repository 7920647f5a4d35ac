package accel

import "github.com/rkvale/tracecore/pkg/xmath"

// AABB is an axis-aligned bounding box, grounded on df07's pkg/core/aabb.go
// but narrowed to float32 and extended with the SAH builder's SurfaceArea
// and LongestAxis helpers.
type AABB struct {
	Min, Max xmath.Vec3
}

func emptyAABB() AABB {
	return AABB{
		Min: xmath.Vec3{X: xmath.MaxFloat32, Y: xmath.MaxFloat32, Z: xmath.MaxFloat32},
		Max: xmath.Vec3{X: -xmath.MaxFloat32, Y: -xmath.MaxFloat32, Z: -xmath.MaxFloat32},
	}
}

func (b AABB) Union(o AABB) AABB {
	return AABB{Min: xmath.MinVec3(b.Min, o.Min), Max: xmath.MaxVec3(b.Max, o.Max)}
}

func (b AABB) ExpandPoint(p xmath.Vec3) AABB {
	return AABB{Min: xmath.MinVec3(b.Min, p), Max: xmath.MaxVec3(b.Max, p)}
}

func (b AABB) Center() xmath.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

func (b AABB) Extent() xmath.Vec3 {
	return b.Max.Sub(b.Min)
}

// Expanded avoids plane collapse for zero-extent boxes (spec §4.7: "expanded
// by ε=1e-4 on each axis").
func (b AABB) Expanded(eps float32) AABB {
	e := xmath.Vec3{X: eps, Y: eps, Z: eps}
	return AABB{Min: b.Min.Sub(e), Max: b.Max.Add(e)}
}

func (b AABB) SurfaceArea() float32 {
	e := b.Extent()
	if e.X < 0 || e.Y < 0 || e.Z < 0 {
		return 0
	}
	return 2 * (e.X*e.Y + e.Y*e.Z + e.Z*e.X)
}

func (b AABB) LongestAxis() int {
	e := b.Extent()
	if e.X > e.Y && e.X > e.Z {
		return 0
	}
	if e.Y > e.Z {
		return 1
	}
	return 2
}

func axisOf(v xmath.Vec3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Hit slab-tests the ray against the box using precomputed inverse
// direction, matching df07's AABB.Hit per-axis loop.
func (b AABB) Hit(origin, invDir xmath.Vec3, tMin, tMax float32) bool {
	for axis := 0; axis < 3; axis++ {
		o, inv := axisOf(origin, axis), axisOf(invDir, axis)
		t0 := (axisOf(b.Min, axis) - o) * inv
		t1 := (axisOf(b.Max, axis) - o) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return false
		}
	}
	return true
}

package accel

import (
	"testing"

	"github.com/rkvale/tracecore/pkg/xmath"
)

func TestAABBUnionGrowsToContainBoth(t *testing.T) {
	a := AABB{Min: xmath.Vec3{X: -1}, Max: xmath.Vec3{X: 1}}
	b := AABB{Min: xmath.Vec3{Y: -2}, Max: xmath.Vec3{Y: 2}}
	u := a.Union(b)
	if u.Min.X != -1 || u.Max.X != 1 || u.Min.Y != -2 || u.Max.Y != 2 {
		t.Errorf("unexpected union bounds %+v", u)
	}
}

func TestAABBExpandedAvoidsZeroExtent(t *testing.T) {
	flat := AABB{Min: xmath.Vec3{X: 1, Y: 1, Z: 1}, Max: xmath.Vec3{X: 1, Y: 2, Z: 1}}
	e := flat.Expanded(1e-4)
	if e.Extent().X <= 0 || e.Extent().Z <= 0 {
		t.Errorf("expected expanded box to have nonzero extent on flat axes, got %+v", e.Extent())
	}
}

func TestAABBHitRespectsTRange(t *testing.T) {
	box := AABB{Min: xmath.Vec3{X: -1, Y: -1, Z: -1}, Max: xmath.Vec3{X: 1, Y: 1, Z: 1}}
	origin := xmath.Vec3{X: 0, Y: 0, Z: -5}
	dir := xmath.Vec3{X: 0, Y: 0, Z: 1}
	invDir := xmath.Vec3{X: xmath.MaxFloat32, Y: xmath.MaxFloat32, Z: 1 / dir.Z}

	if !box.Hit(origin, invDir, 1e-4, xmath.MaxFloat32) {
		t.Error("expected ray through box center to hit")
	}
	if box.Hit(origin, invDir, 1e-4, 2) {
		t.Error("expected hit to be excluded by a tMax before the box")
	}
}

func TestAABBSurfaceAreaOfUnitCube(t *testing.T) {
	box := AABB{Min: xmath.Vec3{}, Max: xmath.Vec3{X: 1, Y: 1, Z: 1}}
	if sa := box.SurfaceArea(); sa != 6 {
		t.Errorf("expected unit cube surface area 6, got %f", sa)
	}
}

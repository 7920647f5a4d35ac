package accel

import (
	"testing"

	"github.com/rkvale/tracecore/pkg/xmath"
)

// boxLeaf treats each primitive as its own AABB, for traversal tests that
// don't need pkg/primitive's shape intersection logic.
type boxLeaf struct {
	bounds []AABB
	order  []uint32
}

func (l *boxLeaf) IntersectLeaf(start, count uint32, ray xmath.Ray, tMax float32) (float32, uint32, bool) {
	invDir := xmath.Vec3{X: safeInv(ray.Direction.X), Y: safeInv(ray.Direction.Y), Z: safeInv(ray.Direction.Z)}
	found := false
	var bestT float32
	var bestIdx uint32
	for i := start; i < start+count; i++ {
		idx := l.order[i]
		b := l.bounds[idx]
		if !b.Hit(ray.Origin, invDir, ray.TMin, tMax) {
			continue
		}
		// Use the distance along the ray to the box center's X as a
		// stand-in "hit distance" so closest-hit ordering is well defined.
		t := (b.Center().X - ray.Origin.X) / ray.Direction.X
		if t < ray.TMin || t > tMax {
			continue
		}
		if !found || t < bestT {
			found = true
			bestT = t
			bestIdx = idx
		}
	}
	return bestT, bestIdx, found
}

func (l *boxLeaf) IntersectLeafAny(start, count uint32, ray xmath.Ray, tMax float32) bool {
	_, _, ok := l.IntersectLeaf(start, count, ray, tMax)
	return ok
}

func TestTraverseFindsClosestBox(t *testing.T) {
	bounds := []AABB{unitBoxAt(0), unitBoxAt(4), unitBoxAt(8)}
	nodes, order := Build(bounds)
	leaf := &boxLeaf{bounds: bounds, order: order}

	ray := xmath.NewRay(xmath.Vec3{X: -10}, xmath.Vec3{X: 1})
	tHit, idx, hit := Traverse(nodes, ray, leaf)
	if !hit {
		t.Fatal("expected a hit along +X through all three boxes")
	}
	if idx != 0 {
		t.Errorf("expected closest hit to be box 0, got %d at t=%f", idx, tHit)
	}
}

func TestTraverseMissesWhenRayPassesAllBoxes(t *testing.T) {
	bounds := []AABB{unitBoxAt(0), unitBoxAt(4)}
	nodes, order := Build(bounds)
	leaf := &boxLeaf{bounds: bounds, order: order}

	ray := xmath.NewRay(xmath.Vec3{X: -10, Y: 10}, xmath.Vec3{X: 1})
	if _, _, hit := Traverse(nodes, ray, leaf); hit {
		t.Error("expected a ray offset far in Y to miss every box")
	}
}

func TestTraverseAnyStopsAtFirstHit(t *testing.T) {
	bounds := []AABB{unitBoxAt(0), unitBoxAt(4), unitBoxAt(8)}
	nodes, order := Build(bounds)
	leaf := &boxLeaf{bounds: bounds, order: order}

	ray := xmath.NewRay(xmath.Vec3{X: -10}, xmath.Vec3{X: 1})
	if !TraverseAny(nodes, ray, leaf) {
		t.Error("expected TraverseAny to report occlusion")
	}
}

func TestTraverseEmptyTree(t *testing.T) {
	if _, _, hit := Traverse(nil, xmath.NewRay(xmath.Vec3{}, xmath.Vec3{X: 1}), &boxLeaf{}); hit {
		t.Error("expected traversal over an empty node array to report no hit")
	}
}

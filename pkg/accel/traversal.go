package accel

import "github.com/rkvale/tracecore/pkg/xmath"

// maxStackDepth bounds the explicit traversal stack per spec §4.7:
// 2*log2(N)+8, sized generously for N up to 2^24 primitives.
const maxStackDepth = 2*24 + 8

// LeafIntersector is supplied by the caller (BLAS: primitive.Primitive,
// TLAS: instance dispatch) to test a ray against the items held by a leaf
// node's [start, start+count) range. It returns the closest hit's t and item
// index with hit=true, or hit=false if nothing in the range is hit within
// tMax, updating any out-of-band hit state the caller tracks via the
// index/tHit pair.
type LeafIntersector interface {
	IntersectLeaf(start, count uint32, ray xmath.Ray, tMax float32) (tHit float32, itemIndex uint32, hit bool)
}

// AnyLeafIntersector supports early-exit shadow-ray queries.
type AnyLeafIntersector interface {
	IntersectLeafAny(start, count uint32, ray xmath.Ray, tMax float32) bool
}

// Traverse walks the flat node array with an explicit stack, descending
// into the nearer child first (ordered by the sign of ray.dir[split_axis]),
// and returns the closest leaf hit, per spec §4.7's ordered-descent rule.
func Traverse(nodes []Node, ray xmath.Ray, leaf LeafIntersector) (tHit float32, itemIndex uint32, hit bool) {
	if len(nodes) == 0 {
		return 0, 0, false
	}
	invDir := xmath.Vec3{X: safeInv(ray.Direction.X), Y: safeInv(ray.Direction.Y), Z: safeInv(ray.Direction.Z)}

	var stack [maxStackDepth]uint32
	sp := 0
	stack[sp] = 0
	sp++

	tMax := ray.TMax
	hit = false

	for sp > 0 {
		sp--
		nodeIdx := stack[sp]
		node := &nodes[nodeIdx]
		if !node.Bounds.Hit(ray.Origin, invDir, ray.TMin, tMax) {
			continue
		}
		if node.IsLeaf {
			if t, idx, ok := leaf.IntersectLeaf(node.LeftOrPrimStart, node.RightOrPrimCount, ray, tMax); ok {
				tMax = t
				tHit = t
				itemIndex = idx
				hit = true
			}
			continue
		}

		near, far := node.LeftOrPrimStart, node.RightOrPrimCount
		if dirIsNegative(ray.Direction, int(node.SplitAxis)) {
			near, far = far, near
		}
		// Push far first so the nearer child pops first (LIFO).
		if sp < len(stack)-1 {
			stack[sp] = far
			sp++
		}
		if sp < len(stack)-1 {
			stack[sp] = near
			sp++
		}
	}
	return tHit, itemIndex, hit
}

// TraverseAny stops at the first leaf hit inside [t_min, t_max], for shadow
// rays where only occlusion (not the closest point) matters.
func TraverseAny(nodes []Node, ray xmath.Ray, leaf AnyLeafIntersector) bool {
	if len(nodes) == 0 {
		return false
	}
	invDir := xmath.Vec3{X: safeInv(ray.Direction.X), Y: safeInv(ray.Direction.Y), Z: safeInv(ray.Direction.Z)}

	var stack [maxStackDepth]uint32
	sp := 0
	stack[sp] = 0
	sp++

	for sp > 0 {
		sp--
		nodeIdx := stack[sp]
		node := &nodes[nodeIdx]
		if !node.Bounds.Hit(ray.Origin, invDir, ray.TMin, ray.TMax) {
			continue
		}
		if node.IsLeaf {
			if leaf.IntersectLeafAny(node.LeftOrPrimStart, node.RightOrPrimCount, ray, ray.TMax) {
				return true
			}
			continue
		}
		if sp < len(stack)-1 {
			stack[sp] = node.RightOrPrimCount
			sp++
		}
		if sp < len(stack)-1 {
			stack[sp] = node.LeftOrPrimStart
			sp++
		}
	}
	return false
}

func safeInv(x float32) float32 {
	if x == 0 {
		return xmath.MaxFloat32
	}
	return 1 / x
}

func dirIsNegative(dir xmath.Vec3, axis int) bool {
	return axisOf(dir, axis) < 0
}

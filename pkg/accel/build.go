package accel

// Node is a flat BVH node: {aabb, left_or_prim_start, right_or_prim_count,
// is_leaf_flag, split_axis}, per spec §4.7. Internal nodes store the right
// child's index in RightOrPrimCount (the left child is always node index+1,
// same adjacency trick achilleasa-polaris's flat BvhNode layout uses).
type Node struct {
	Bounds           AABB
	LeftOrPrimStart  uint32
	RightOrPrimCount uint32
	IsLeaf           bool
	SplitAxis        uint8
}

const (
	sahBins     = 12
	leafPrimMax = 4
	cTraversal  = float32(1)
	cIntersect  = float32(1)
)

// Build runs the binned-SAH builder over n items, given their bounds.
// Returns the flat node array and a permutation mapping leaf primitive slots
// back to original item indices (the BLAS/TLAS stores primitives in this
// reordered sequence).
func Build(bounds []AABB) (nodes []Node, order []uint32) {
	n := len(bounds)
	order = make([]uint32, n)
	for i := range order {
		order[i] = uint32(i)
	}
	if n == 0 {
		return nil, order
	}

	b := &builder{bounds: bounds, order: order}
	b.build(0, n, 0)
	return b.nodes, b.order
}

type builder struct {
	bounds []AABB
	order  []uint32
	nodes  []Node
}

// build partitions order[start:end] and appends node(s) to b.nodes,
// returning the index of the node it created — grounded on
// achilleasa-polaris's flat-array recursive `partition`, but scoring splits
// with binned SAH instead of a single whole-range score.
func (b *builder) build(start, end int, depth int) uint32 {
	bounds := emptyAABB()
	for _, idx := range b.order[start:end] {
		bounds = bounds.Union(b.bounds[idx])
	}

	nodeIdx := uint32(len(b.nodes))
	b.nodes = append(b.nodes, Node{Bounds: bounds})

	count := end - start
	if count <= leafPrimMax {
		b.makeLeaf(nodeIdx, start, count)
		return nodeIdx
	}

	axis, splitAt, found := b.bestSplit(bounds, start, end)
	if !found {
		b.makeLeaf(nodeIdx, start, count)
		return nodeIdx
	}

	mid := partitionByAxis(b.order[start:end], b.bounds, axis, splitAt) + start
	if mid == start || mid == end {
		// Degenerate split (all centroids on one side of the bin boundary);
		// fall back to a median split so the builder always terminates.
		mid = start + count/2
		medianSplit(b.order[start:end], b.bounds, axis)
	}

	b.nodes[nodeIdx].SplitAxis = uint8(axis)
	b.build(start, mid, depth+1) // always appended at nodeIdx+1
	right := b.build(mid, end, depth+1)
	b.nodes[nodeIdx].RightOrPrimCount = right
	b.nodes[nodeIdx].LeftOrPrimStart = nodeIdx + 1
	return nodeIdx
}

func (b *builder) makeLeaf(nodeIdx uint32, start, count int) {
	b.nodes[nodeIdx].IsLeaf = true
	b.nodes[nodeIdx].LeftOrPrimStart = uint32(start)
	b.nodes[nodeIdx].RightOrPrimCount = uint32(count)
}

// bestSplit evaluates the SAH cost of sahBins candidate planes per axis and
// returns the lowest-cost (axis, world-space split coordinate), per spec
// §4.7's binned-SAH cost formula.
func (b *builder) bestSplit(bounds AABB, start, end int) (axis int, splitAt float32, found bool) {
	bestCost := float32(end-start) * cIntersect // cost of not splitting at all
	found = false

	for a := 0; a < 3; a++ {
		lo, hi := axisOf(bounds.Min, a), axisOf(bounds.Max, a)
		if hi-lo < 1e-6 {
			continue
		}
		var binCount [sahBins]int
		var binBounds [sahBins]AABB
		for i := range binBounds {
			binBounds[i] = emptyAABB()
		}
		invWidth := float32(sahBins) / (hi - lo)

		for _, idx := range b.order[start:end] {
			c := axisOf(b.bounds[idx].Center(), a)
			bin := clampBin(int((c - lo) * invWidth))
			binCount[bin]++
			binBounds[bin] = binBounds[bin].Union(b.bounds[idx])
		}

		// Prefix sweep: cost of splitting after bin k.
		leftCount := 0
		leftBB := emptyAABB()
		var rightCount [sahBins]int
		var rightBB [sahBins]AABB
		rightBB[sahBins-1] = emptyAABB()
		running := 0
		runningBB := emptyAABB()
		for k := sahBins - 1; k >= 0; k-- {
			rightCount[k] = running
			rightBB[k] = runningBB
			running += binCount[k]
			runningBB = runningBB.Union(binBounds[k])
		}

		totalArea := bounds.SurfaceArea()
		if totalArea <= 0 {
			continue
		}
		for k := 0; k < sahBins-1; k++ {
			leftCount += binCount[k]
			leftBB = leftBB.Union(binBounds[k])
			rc := rightCount[k+1] + binCount[k+1]
			if leftCount == 0 || rc == 0 {
				continue
			}
			rBB := rightBB[k+1].Union(binBounds[k+1])
			cost := cTraversal + (leftBB.SurfaceArea()/totalArea)*float32(leftCount)*cIntersect +
				(rBB.SurfaceArea()/totalArea)*float32(rc)*cIntersect
			if cost < bestCost {
				bestCost = cost
				axis = a
				splitAt = lo + (float32(k+1))/invWidth
				found = true
			}
		}
	}
	return axis, splitAt, found
}

func clampBin(i int) int {
	if i < 0 {
		return 0
	}
	if i >= sahBins {
		return sahBins - 1
	}
	return i
}

// partitionByAxis reorders items in place so that all items with centroid
// below splitAt on the given axis come first, returning the split point.
func partitionByAxis(order []uint32, bounds []AABB, axis int, splitAt float32) int {
	i, j := 0, len(order)-1
	for i <= j {
		for i <= j && axisOf(bounds[order[i]].Center(), axis) < splitAt {
			i++
		}
		for i <= j && axisOf(bounds[order[j]].Center(), axis) >= splitAt {
			j--
		}
		if i < j {
			order[i], order[j] = order[j], order[i]
			i++
			j--
		}
	}
	return i
}

// medianSplit is the fallback used when SAH binning degenerates to a single
// side, grounded directly on df07's buildBVH median-split-along-longest-axis
// strategy.
func medianSplit(order []uint32, bounds []AABB, axis int) {
	n := len(order)
	for i := 1; i < n; i++ {
		for j := i; j > 0 && axisOf(bounds[order[j-1]].Center(), axis) > axisOf(bounds[order[j]].Center(), axis); j-- {
			order[j-1], order[j] = order[j], order[j-1]
		}
	}
}

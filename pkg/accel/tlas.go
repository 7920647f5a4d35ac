package accel

import "github.com/rkvale/tracecore/pkg/xmath"

// Instance is one placement of a BLAS into the world, per spec §4.7's
// two-level layout: the TLAS is built over instance world AABBs, and each
// leaf hit re-enters the instance's own BLAS with a transformed ray.
type Instance struct {
	ToWorld       xmath.Mat4
	ToLocal       xmath.Mat4 // ToWorld.Inverse(), precomputed at scene build time
	NormalToWorld xmath.Mat4 // transpose of ToLocal's 3x3 block, i.e. the inverse-transpose of ToWorld's
	WorldBounds   AABB
}

// WorldHit is a BLAS LocalHit transformed back into world space, tagged
// with the instance that produced it.
type WorldHit struct {
	T               float32
	Point           xmath.Vec3
	GeometricNormal xmath.Vec3
	ShadingNormal   xmath.Vec3
	UV              xmath.Vec2
	Tangent         xmath.Vec3
	Bitangent       xmath.Vec3
	FrontFace       bool
	InstanceIndex   uint32
	TriangleIndex   int32
	Valid           bool
}

// InstanceIntersector is implemented per-scene: given an instance index and
// a ray already expressed in that instance's local space, return its
// closest local-space hit (typically a BLAS Traverse over the instance's
// own primitive array).
type InstanceIntersector interface {
	IntersectInstance(instanceIdx uint32, localRay xmath.Ray) (LocalResult, bool)
	IntersectInstanceAny(instanceIdx uint32, localRay xmath.Ray) bool
}

// LocalResult is the subset of primitive.LocalHit the TLAS needs to
// transform back to world space; kept here (rather than importing
// pkg/primitive) so accel has no dependency on the shape package.
type LocalResult struct {
	T               float32
	Point           xmath.Vec3
	GeometricNormal xmath.Vec3
	ShadingNormal   xmath.Vec3
	UV              xmath.Vec2
	Tangent         xmath.Vec3
	Bitangent       xmath.Vec3
	FrontFace       bool
	TriangleIndex   int32
}

// TLAS is the top-level acceleration structure over a scene's instances.
type TLAS struct {
	Nodes     []Node
	Order     []uint32 // leaf slot -> instance index
	Instances []Instance
}

// BuildTLAS runs the shared binned-SAH builder over instance world bounds.
func BuildTLAS(instances []Instance) *TLAS {
	bounds := make([]AABB, len(instances))
	for i, inst := range instances {
		bounds[i] = inst.WorldBounds
	}
	nodes, order := Build(bounds)
	return &TLAS{Nodes: nodes, Order: order, Instances: instances}
}

// tlasLeafAdapter satisfies LeafIntersector/AnyLeafIntersector by transforming
// the incoming world ray into each candidate instance's local space, per
// spec §4.7: "ray transform into instance-local space with t rescaled by
// |local_dir|."
type tlasLeafAdapter struct {
	t    *TLAS
	hit  InstanceIntersector
	best LocalResult
	inst uint32
}

func (a *tlasLeafAdapter) IntersectLeaf(start, count uint32, ray xmath.Ray, tMax float32) (float32, uint32, bool) {
	found := false
	bestT := tMax
	for i := start; i < start+count; i++ {
		instIdx := a.t.Order[i]
		inst := a.t.Instances[instIdx]

		localOrigin := inst.ToLocal.TransformPoint(ray.Origin)
		localDir := inst.ToLocal.TransformVector(ray.Direction)
		scale := localDir.Length()
		if scale < 1e-12 {
			continue
		}
		localRay := xmath.Ray{
			Origin:    localOrigin,
			Direction: localDir,
			TMin:      ray.TMin * scale,
			TMax:      bestT * scale,
		}
		res, ok := a.hit.IntersectInstance(instIdx, localRay)
		if !ok {
			continue
		}
		worldT := res.T / scale
		if worldT >= bestT {
			continue
		}
		bestT = worldT
		a.best = res
		a.inst = instIdx
		found = true
	}
	if !found {
		return 0, 0, false
	}
	return bestT, a.inst, true
}

func (a *tlasLeafAdapter) IntersectLeafAny(start, count uint32, ray xmath.Ray, tMax float32) bool {
	for i := start; i < start+count; i++ {
		instIdx := a.t.Order[i]
		inst := a.t.Instances[instIdx]

		localOrigin := inst.ToLocal.TransformPoint(ray.Origin)
		localDir := inst.ToLocal.TransformVector(ray.Direction)
		scale := localDir.Length()
		if scale < 1e-12 {
			continue
		}
		localRay := xmath.Ray{
			Origin:    localOrigin,
			Direction: localDir,
			TMin:      ray.TMin * scale,
			TMax:      tMax * scale,
		}
		if a.hit.IntersectInstanceAny(instIdx, localRay) {
			return true
		}
	}
	return false
}

// Intersect finds the closest world-space hit across all instances.
func (t *TLAS) Intersect(ray xmath.Ray, hit InstanceIntersector) WorldHit {
	adapter := &tlasLeafAdapter{t: t, hit: hit}
	tHit, _, ok := Traverse(t.Nodes, ray, adapter)
	if !ok {
		return WorldHit{}
	}
	inst := t.Instances[adapter.inst]
	r := adapter.best
	shadingNormal := inst.NormalToWorld.TransformVector(r.ShadingNormal).Normalize()
	// Re-orthogonalize the tangent frame against the transformed shading
	// normal: under non-uniform scale, Tangent and Normal no longer
	// transform the same way, so naively transforming both independently
	// leaves them non-perpendicular. Gram-Schmidt the tangent against the
	// normal, then rederive the bitangent rather than transforming it too.
	tangent := inst.ToWorld.TransformVector(r.Tangent)
	tangent = tangent.Sub(shadingNormal.Scale(tangent.Dot(shadingNormal))).Normalize()
	bitangent := shadingNormal.Cross(tangent)
	return WorldHit{
		T:               tHit,
		Point:           ray.At(tHit),
		GeometricNormal: inst.NormalToWorld.TransformVector(r.GeometricNormal).Normalize(),
		ShadingNormal:   shadingNormal,
		UV:              r.UV,
		Tangent:         tangent,
		Bitangent:       bitangent,
		FrontFace:       r.FrontFace,
		InstanceIndex:   adapter.inst,
		TriangleIndex:   r.TriangleIndex,
		Valid:           true,
	}
}

// IntersectAny reports occlusion only, for shadow rays.
func (t *TLAS) IntersectAny(ray xmath.Ray, hit InstanceIntersector) bool {
	adapter := &tlasLeafAdapter{t: t, hit: hit}
	return TraverseAny(t.Nodes, ray, adapter)
}

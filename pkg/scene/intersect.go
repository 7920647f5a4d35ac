package scene

import (
	"github.com/rkvale/tracecore/pkg/accel"
	"github.com/rkvale/tracecore/pkg/bsdf"
	"github.com/rkvale/tracecore/pkg/primitive"
	"github.com/rkvale/tracecore/pkg/texture"
	"github.com/rkvale/tracecore/pkg/xmath"
)

// maxOpacitySteps bounds intersect_any's stochastic opacity pass-through
// loop (spec §4.8: "at most 16 stochastic steps before declaring blocked").
const maxOpacitySteps = 16

// Rand is the minimal randomness surface intersect_any's opacity
// pass-through needs.
type Rand interface {
	Get1D() float32
}

// IntersectInstance implements accel.InstanceIntersector, the glue between
// the generic two-level BVH in pkg/accel and this package's concrete
// primitive storage. The leaf adapter caches every leaf-slot hit it
// computes during traversal so the winning slot's full LocalHit (normal,
// uv, tangent frame) can be recovered after Traverse settles on a t/index.
func (s *Scene) IntersectInstance(instanceIdx uint32, localRay xmath.Ray) (accel.LocalResult, bool) {
	inst := &s.Instances[instanceIdx]
	adapter := newLeafAdapter(inst)
	_, slot, hit := accel.Traverse(inst.BLASNodes, localRay, adapter)
	if !hit {
		return accel.LocalResult{}, false
	}
	lh := adapter.cache[slot]
	return accel.LocalResult{
		T: lh.T, Point: lh.Point, GeometricNormal: lh.GeometricNormal, ShadingNormal: lh.ShadingNormal,
		UV: lh.UV, Tangent: lh.Tangent, Bitangent: lh.Bitangent, FrontFace: lh.FrontFace,
		TriangleIndex: lh.TriangleIndex,
	}, true
}

func (s *Scene) IntersectInstanceAny(instanceIdx uint32, localRay xmath.Ray) bool {
	inst := &s.Instances[instanceIdx]
	adapter := &anyLeafAdapter{inst: inst}
	return accel.TraverseAny(inst.BLASNodes, localRay, adapter)
}

// leafAdapter intersects a BLAS leaf's slot range against the instance's
// primitive — a single non-mesh primitive occupies slot 0 only; a mesh's
// slots map 1:1 to triangle indices via inst.BLASOrder.
type leafAdapter struct {
	inst  *Instance
	cache []primitive.LocalHit
}

func newLeafAdapter(inst *Instance) *leafAdapter {
	return &leafAdapter{inst: inst, cache: make([]primitive.LocalHit, len(inst.BLASOrder))}
}

func (a *leafAdapter) IntersectLeaf(start, count uint32, ray xmath.Ray, tMax float32) (float32, uint32, bool) {
	r := ray
	r.TMax = tMax
	best := tMax
	bestSlot := uint32(0)
	found := false
	for i := start; i < start+count; i++ {
		lh := a.intersectSlot(i, r)
		if !lh.Valid || lh.T >= best {
			continue
		}
		best = lh.T
		bestSlot = i
		found = true
		a.cache[i] = lh
		r.TMax = lh.T
	}
	return best, bestSlot, found
}

func (a *leafAdapter) intersectSlot(slot uint32, ray xmath.Ray) primitive.LocalHit {
	if a.inst.Primitive.Kind == primitive.KindMesh {
		return a.inst.Primitive.IntersectMeshTriangle(ray, int(a.inst.BLASOrder[slot]))
	}
	return a.inst.Primitive.Intersect(ray)
}

type anyLeafAdapter struct {
	inst *Instance
}

func (a *anyLeafAdapter) IntersectLeafAny(start, count uint32, ray xmath.Ray, tMax float32) bool {
	r := ray
	r.TMax = tMax
	for i := start; i < start+count; i++ {
		var lh primitive.LocalHit
		if a.inst.Primitive.Kind == primitive.KindMesh {
			lh = a.inst.Primitive.IntersectMeshTriangle(r, int(a.inst.BLASOrder[i]))
		} else {
			lh = a.inst.Primitive.Intersect(r)
		}
		if lh.Valid {
			return true
		}
	}
	return false
}

// Intersect traverses the TLAS and resolves the winning instance's local
// hit into a world-space Hit record with the bsdf/medium ids attached.
func (s *Scene) Intersect(ray xmath.Ray) Hit {
	wh := s.TLAS.Intersect(ray, s)
	if !wh.Valid {
		return Hit{}
	}
	inst := &s.Instances[wh.InstanceIndex]
	return Hit{
		Valid:       true,
		T:           wh.T,
		Position:    wh.Point,
		NormalGeom:  wh.GeometricNormal,
		NormalShade: wh.ShadingNormal,
		UV:          wh.UV,
		Tangent:     wh.Tangent,
		Bitangent:   wh.Bitangent,
		FrontFace:   wh.FrontFace,
		InstanceID:    wh.InstanceIndex,
		BSDFID:        inst.BSDFID,
		MediumInt:     inst.MediumInt,
		MediumExt:     inst.MediumExt,
		TriangleIndex: wh.TriangleIndex,
	}
}

// IntersectAny is the shadow-ray query: respects opacity textures by
// stochastic pass-through, walking forward from each transparent-but-hit
// point until either no hit remains (unoccluded) or maxOpacitySteps is
// exhausted (treated as occluded, per spec §4.8).
func (s *Scene) IntersectAny(ray xmath.Ray, rng Rand) bool {
	r := ray
	for step := 0; step < maxOpacitySteps; step++ {
		wh := s.TLAS.Intersect(r, s)
		if !wh.Valid {
			return false
		}
		inst := &s.Instances[wh.InstanceIndex]
		alpha := s.opacityAt(inst.BSDFID, wh.UV)
		if alpha >= 1 {
			return true
		}
		if rng.Get1D() > 1-alpha {
			return true
		}
		remaining := r.TMax - wh.T
		if remaining <= 0 {
			return false
		}
		r.Origin = wh.Point
		r.TMin = 1e-4
		r.TMax = remaining
	}
	return true // exhausted the opacity step budget: declare blocked
}

// BSDFAt looks up a bsdf.ID in the scene's table, returning the zero BSDF
// value for InvalidID or an out-of-range id; its Kind is KindDiffuse and
// every texture id in it is 0.
func (s *Scene) BSDFAt(id bsdf.ID) bsdf.BSDF {
	if id == bsdf.InvalidID || int(id) >= len(s.BSDFs) {
		return bsdf.BSDF{}
	}
	return s.BSDFs[id]
}

// opacityAt returns 1 (fully opaque) when the surface has no opacity
// texture, else the sampled alpha at uv.
func (s *Scene) opacityAt(id bsdf.ID, uv xmath.Vec2) float32 {
	b := s.BSDFAt(id)
	if b.OpacityID == texture.InvalidID {
		return 1
	}
	return s.Textures.Sample(b.OpacityID, uv).X
}

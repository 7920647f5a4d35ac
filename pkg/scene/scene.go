// Package scene owns every buffer the renderer reads from: textures,
// BSDFs, media, instances (each with a baked BLAS), emitters, and the TLAS
// over instance world AABBs. Build resolves a SceneConfig value once; the
// result is immutable for the lifetime of the render.
package scene

import (
	"github.com/rkvale/tracecore/internal/rerr"
	"github.com/rkvale/tracecore/internal/rlog"
	"github.com/rkvale/tracecore/pkg/accel"
	"github.com/rkvale/tracecore/pkg/bsdf"
	"github.com/rkvale/tracecore/pkg/emitter"
	"github.com/rkvale/tracecore/pkg/primitive"
	"github.com/rkvale/tracecore/pkg/texture"
	"github.com/rkvale/tracecore/pkg/xmath"
)

// maxPrimitives bounds scene size per spec's SceneTooLarge taxonomy — the
// BVH's flat leaf encoding and traversal stack are both sized for at most
// 2^24 primitives.
const maxPrimitives = 1 << 24

// instanceAABBEpsilon expands a degenerate (zero-extent) instance world
// AABB on every axis so the BVH's slab test never collapses onto a plane.
const instanceAABBEpsilon = 1e-4

// Instance is a built geometry instance: its primitive, baked BLAS, world
// transforms, material/medium references, and — if its BSDF is an
// AreaLight — the index of its implicit emitter wrapper.
type Instance struct {
	Primitive primitive.Primitive

	ToWorld       xmath.Mat4
	ToLocal       xmath.Mat4
	NormalToWorld xmath.Mat4
	WorldBounds   accel.AABB

	BLASNodes []accel.Node
	BLASOrder []uint32 // leaf slot -> local primitive index (always [0] for non-mesh kinds)

	BSDFID    bsdf.ID
	MediumInt MediumID
	MediumExt MediumID

	AreaLightIndex int // index into Scene.areaLights, or -1
}

// Hit is the intersection record the integrator consumes: world-space
// position and normals, uv, tangent frame, and the ids needed to look up
// the hit surface's BSDF and adjoining media.
type Hit struct {
	Valid bool
	T     float32

	Position    xmath.Vec3
	NormalGeom  xmath.Vec3
	NormalShade xmath.Vec3
	UV          xmath.Vec2
	Tangent     xmath.Vec3
	Bitangent   xmath.Vec3
	FrontFace   bool // true when the ray hit the front (outward-facing) side; false means it arrived from inside the surface

	InstanceID uint32
	BSDFID     bsdf.ID
	MediumInt  MediumID
	MediumExt  MediumID

	// TriangleIndex carries through the hit mesh triangle (if any), used
	// only for area-light pdf bookkeeping; unset (0) and unused for
	// analytic (non-mesh) shapes.
	TriangleIndex int32
}

// Scene is the immutable, built form of a SceneConfig.
type Scene struct {
	Camera     Camera
	Integrator IntegratorConfig

	Textures texture.Table
	BSDFs    []bsdf.BSDF
	Media    []Medium
	Emitters emitter.Table

	Instances []Instance
	TLAS      *accel.TLAS

	areaLights []uint32 // index into Instances, one entry per AreaLight instance
}

// Build resolves a SceneConfig into a renderable Scene: validates ids,
// constructs a primitive and BLAS per instance, derives world transforms
// and AABBs, collects implicit area-light emitters, and builds the TLAS.
func Build(cfg SceneConfig, log rlog.Logger) (*Scene, error) {
	if log == nil {
		log = rlog.Discard()
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	s := &Scene{
		Camera:     NewCamera(cfg.Camera.Eye, cfg.Camera.LookAt, cfg.Camera.Up, cfg.Camera.FovX, cfg.Camera.Width, cfg.Camera.Height, cfg.Camera.SPP),
		Integrator: cfg.Integrator,
		Textures:   texture.Table{Textures: cfg.Textures},
		BSDFs:      cfg.BSDFs,
		Emitters:   emitter.Table{Emitters: cfg.Emitters},
	}
	for _, m := range cfg.Media {
		s.Media = append(s.Media, buildMedium(m))
	}

	totalPrims := 0
	s.Instances = make([]Instance, len(cfg.Instances))
	for i, ic := range cfg.Instances {
		inst, primCount, err := buildInstance(ic)
		if err != nil {
			return nil, err
		}
		totalPrims += primCount
		if totalPrims > maxPrimitives {
			return nil, rerr.TooLarge("scene exceeds %d total primitives", maxPrimitives)
		}
		s.Instances[i] = inst
	}

	for i := range s.Instances {
		inst := &s.Instances[i]
		if inst.BSDFID == bsdf.InvalidID || int(inst.BSDFID) >= len(s.BSDFs) {
			continue
		}
		if s.BSDFs[inst.BSDFID].Kind != bsdf.KindAreaLight {
			continue
		}
		inst.AreaLightIndex = len(s.areaLights)
		s.areaLights = append(s.areaLights, uint32(i))
	}

	if s.Emitters.Count() == 0 && len(s.areaLights) == 0 {
		log.Warningf("scene has no emitters and no area-light instances; rendered image will be black")
	}

	instances := make([]accel.Instance, len(s.Instances))
	for i, inst := range s.Instances {
		instances[i] = accel.Instance{
			ToWorld:       inst.ToWorld,
			ToLocal:       inst.ToLocal,
			NormalToWorld: inst.NormalToWorld,
			WorldBounds:   inst.WorldBounds,
		}
	}
	s.TLAS = accel.BuildTLAS(instances)

	log.Infof("scene built: %d instances, %d primitives, %d explicit emitters, %d area lights", len(s.Instances), totalPrims, s.Emitters.Count(), len(s.areaLights))
	return s, nil
}

// buildInstance constructs the instance's primitive.Primitive, its BLAS
// (a single-leaf tree for analytic shapes, a real SAH tree over triangles
// for meshes), and the derived world-space transforms/AABB.
func buildInstance(ic InstanceConfig) (Instance, int, error) {
	prim := primitive.Primitive{
		Kind:        ic.Kind,
		FlipNormals: ic.FlipNormals,
		Center:      ic.Center,
		Radius:      ic.Radius,
		HalfExtent:  ic.HalfExtent,
		Height:      ic.Height,
		Mesh:        ic.Mesh,
	}

	var localBounds []accel.AABB
	if ic.Kind == primitive.KindMesh {
		if ic.Mesh == nil {
			return Instance{}, 0, rerr.Config("mesh instance has a nil mesh")
		}
		n := ic.Mesh.TriangleCount()
		localBounds = make([]accel.AABB, n)
		for t := 0; t < n; t++ {
			min, max := ic.Mesh.TriangleBounds(t)
			localBounds[t] = accel.AABB{Min: min, Max: max}
		}
	} else {
		min, max := prim.Bounds()
		localBounds = []accel.AABB{{Min: min, Max: max}}
	}
	nodes, order := accel.Build(localBounds)

	toLocal := ic.ToWorld.Inverse()
	worldBounds := worldAABBOf(ic.ToWorld, localBounds).Expanded(instanceAABBEpsilon)

	return Instance{
		Primitive:      prim,
		ToWorld:        ic.ToWorld,
		ToLocal:        toLocal,
		NormalToWorld:  xmath.NormalMatrix(toLocal),
		WorldBounds:    worldBounds,
		BLASNodes:      nodes,
		BLASOrder:      order,
		BSDFID:         ic.BSDFID,
		MediumInt:      ic.MediumInt,
		MediumExt:      ic.MediumExt,
		AreaLightIndex: -1,
	}, len(localBounds), nil
}

// worldAABBOf transforms every local-space leaf box's 8 corners to world
// space and unions them — cheap since it runs once per instance at build
// time, and correct under rotation (unlike transforming just min/max).
func worldAABBOf(toWorld xmath.Mat4, localBounds []accel.AABB) accel.AABB {
	result := accel.AABB{
		Min: xmath.Vec3{X: xmath.MaxFloat32, Y: xmath.MaxFloat32, Z: xmath.MaxFloat32},
		Max: xmath.Vec3{X: -xmath.MaxFloat32, Y: -xmath.MaxFloat32, Z: -xmath.MaxFloat32},
	}
	for _, b := range localBounds {
		for i := 0; i < 8; i++ {
			corner := xmath.Vec3{
				X: pick(i&1 == 0, b.Min.X, b.Max.X),
				Y: pick(i&2 == 0, b.Min.Y, b.Max.Y),
				Z: pick(i&4 == 0, b.Min.Z, b.Max.Z),
			}
			world := toWorld.TransformPoint(corner)
			result = result.ExpandPoint(world)
		}
	}
	return result
}

func pick(cond bool, a, b float32) float32 {
	if cond {
		return a
	}
	return b
}

func validateConfig(cfg SceneConfig) error {
	if cfg.Camera.FovX <= 0 {
		return rerr.Config("camera fov_x must be > 0, got %f", cfg.Camera.FovX)
	}
	if cfg.Camera.Width <= 0 || cfg.Camera.Height <= 0 {
		return rerr.Config("camera frame must be non-empty, got %dx%d", cfg.Camera.Width, cfg.Camera.Height)
	}
	if cfg.Camera.SPP <= 0 {
		return rerr.Config("camera spp must be > 0, got %d", cfg.Camera.SPP)
	}
	if cfg.Integrator.DepthMax < 1 {
		return rerr.Config("integrator depth_max must be >= 1, got %d", cfg.Integrator.DepthMax)
	}
	if cfg.Integrator.PdfRR <= 0 || cfg.Integrator.PdfRR > 1 {
		return rerr.Config("integrator pdf_rr must be in (0,1], got %f", cfg.Integrator.PdfRR)
	}

	for i, b := range cfg.BSDFs {
		if !textureInRange(b.OpacityID, len(cfg.Textures)) {
			return rerr.Config("bsdf %d: opacity texture id out of range", i)
		}
		if !textureInRange(b.BumpMapID, len(cfg.Textures)) {
			return rerr.Config("bsdf %d: bumpmap texture id out of range", i)
		}
		if (b.Kind == bsdf.KindDielectric || b.Kind == bsdf.KindThinDielectric || b.Kind == bsdf.KindPlastic) && b.Eta <= 0 {
			return rerr.Config("bsdf %d: dielectric eta must be > 0, got %f", i, b.Eta)
		}
	}
	for i, inst := range cfg.Instances {
		if inst.BSDFID != bsdf.InvalidID && int(inst.BSDFID) >= len(cfg.BSDFs) {
			return rerr.Config("instance %d: bsdf id %d out of range", i, inst.BSDFID)
		}
		if inst.MediumInt != InvalidMediumID && int(inst.MediumInt) >= len(cfg.Media) {
			return rerr.Config("instance %d: interior medium id %d out of range", i, inst.MediumInt)
		}
		if inst.MediumExt != InvalidMediumID && int(inst.MediumExt) >= len(cfg.Media) {
			return rerr.Config("instance %d: exterior medium id %d out of range", i, inst.MediumExt)
		}
	}
	if len(cfg.Emitters) == 0 && len(cfg.Instances) == 0 {
		return rerr.Config("scene has neither emitters nor instances")
	}
	return nil
}

func textureInRange(id texture.ID, n int) bool {
	return id == texture.InvalidID || int(id) < n
}

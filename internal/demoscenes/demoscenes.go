// Package demoscenes builds a small set of canned SceneConfig values used by
// cmd/tracecore's "scenes" subcommand and by the repo's own regression
// tests: a Cornell-box-equivalent, a furnace test, and an environment-map-
// only scene. None of this is part of the core's own external-interfaces
// contract (pkg/scene accepts SceneConfig only, never a file path or a
// scene name) — it is demo/CLI-side convenience built on top of it.
package demoscenes

import (
	"math"

	"github.com/rkvale/tracecore/pkg/bsdf"
	"github.com/rkvale/tracecore/pkg/emitter"
	"github.com/rkvale/tracecore/pkg/primitive"
	"github.com/rkvale/tracecore/pkg/scene"
	"github.com/rkvale/tracecore/pkg/texture"
	"github.com/rkvale/tracecore/pkg/xmath"
)

func defaultCamera(eye, lookAt xmath.Vec3) scene.CameraConfig {
	return scene.CameraConfig{
		Eye: eye, LookAt: lookAt, Up: xmath.Vec3{X: 0, Y: 1, Z: 0},
		FovX: float32(math.Pi) / 3, Width: 512, Height: 512, SPP: 64,
	}
}

func defaultIntegrator() scene.IntegratorConfig {
	return scene.IntegratorConfig{Kind: scene.IntegratorPath, DepthMax: 16, DepthRR: 4, PdfRR: 0.95}
}

// wallSlab is a thin Cube instance standing in for an infinite wall plane —
// intersectCube's per-axis slab test already orients its normal against the
// incoming ray, so a slab a few units thick behaves exactly like a quad wall
// from inside the box, without needing a rotated Rectangle transform.
func wallSlab(half xmath.Vec3, center xmath.Vec3, bsdfID bsdf.ID) scene.InstanceConfig {
	return scene.InstanceConfig{
		Kind: primitive.KindCube, HalfExtent: half, ToWorld: xmath.Translate(center),
		BSDFID: bsdfID, MediumInt: scene.InvalidMediumID, MediumExt: scene.InvalidMediumID,
	}
}

// CornellBox returns a classic Cornell-box layout: five thin-slab walls
// (white floor/ceiling/back, red left, green right), a rectangular ceiling
// area light, a diffuse sphere, and a dielectric (glass) sphere — grounded
// on the teacher's own Cornell-box demo scene's wall/light/sphere
// composition, rebuilt entirely on this repo's InstanceConfig/SceneConfig
// model instead of the teacher's Quad/Shape/Light types.
func CornellBox() scene.SceneConfig {
	const h = 1.0 // box half-extent

	textures := []texture.Texture{
		texture.NewConstant(xmath.Vec3{X: 0.73, Y: 0.73, Z: 0.73}), // 0: white
		texture.NewConstant(xmath.Vec3{X: 0.65, Y: 0.05, Z: 0.05}), // 1: red
		texture.NewConstant(xmath.Vec3{X: 0.12, Y: 0.45, Z: 0.15}), // 2: green
		texture.NewConstant(xmath.Vec3{X: 15, Y: 15, Z: 15}),       // 3: light radiance
	}
	bsdfs := []bsdf.BSDF{
		{Kind: bsdf.KindDiffuse, Reflectance: 0, OpacityID: texture.InvalidID, BumpMapID: texture.InvalidID}, // 0: white
		{Kind: bsdf.KindDiffuse, Reflectance: 1, OpacityID: texture.InvalidID, BumpMapID: texture.InvalidID}, // 1: red
		{Kind: bsdf.KindDiffuse, Reflectance: 2, OpacityID: texture.InvalidID, BumpMapID: texture.InvalidID}, // 2: green
		{Kind: bsdf.KindDielectric, Eta: 1.5, Roughness: texture.InvalidID, RoughnessV: texture.InvalidID,
			OpacityID: texture.InvalidID, BumpMapID: texture.InvalidID}, // 3: glass sphere
		{Kind: bsdf.KindAreaLight, Radiance: 3, Weight: 1, OpacityID: texture.InvalidID, BumpMapID: texture.InvalidID}, // 4: ceiling light
	}

	const slab = 0.02
	instances := []scene.InstanceConfig{
		wallSlab(xmath.Vec3{X: h, Y: slab, Z: h}, xmath.Vec3{Y: -h}, 0),     // floor
		wallSlab(xmath.Vec3{X: h, Y: slab, Z: h}, xmath.Vec3{Y: h}, 0),      // ceiling
		wallSlab(xmath.Vec3{X: h, Y: h, Z: slab}, xmath.Vec3{Z: h}, 0),      // back wall
		wallSlab(xmath.Vec3{X: slab, Y: h, Z: h}, xmath.Vec3{X: -h}, 1),     // left wall (red)
		wallSlab(xmath.Vec3{X: slab, Y: h, Z: h}, xmath.Vec3{X: h}, 2),      // right wall (green)
		{
			Kind: primitive.KindSphere, Radius: 0.35, ToWorld: xmath.Translate(xmath.Vec3{X: -0.4, Y: -h + 0.35, Z: 0.1}),
			BSDFID: 3, MediumInt: scene.InvalidMediumID, MediumExt: scene.InvalidMediumID,
		},
		{
			Kind: primitive.KindSphere, Radius: 0.3, ToWorld: xmath.Translate(xmath.Vec3{X: 0.45, Y: -h + 0.3, Z: -0.2}),
			BSDFID: 0, MediumInt: scene.InvalidMediumID, MediumExt: scene.InvalidMediumID,
		},
		{
			// Rotated 90° about X so the rectangle's local Z=0 plane (normally
			// facing along Z) lies flat under the ceiling, normal pointing -Y
			// into the box.
			Kind: primitive.KindRectangle, HalfExtent: xmath.Vec3{X: 0.25, Y: 0.25},
			ToWorld: xmath.Translate(xmath.Vec3{Y: h - slab*1.01}).Mul(xmath.Rotate(xmath.Vec3{X: 1}, float32(math.Pi)/2)),
			BSDFID:  4, MediumInt: scene.InvalidMediumID, MediumExt: scene.InvalidMediumID,
		},
	}

	return scene.SceneConfig{
		Camera:     defaultCamera(xmath.Vec3{X: 0, Y: 0, Z: -3.4}, xmath.Vec3{Y: 0}),
		Integrator: defaultIntegrator(),
		Textures:   textures,
		BSDFs:      bsdfs,
		Instances:  instances,
	}
}

// FurnaceTest returns a single diffuse sphere bathed in constant environment
// radiance with no other geometry — the classic furnace test, where the
// average outgoing radiance should equal albedo*env_radiance regardless of
// depth, since a Lambertian BRDF integrates to exactly its albedo under
// uniform illumination. Used as a regression scene: render it and compare
// the mean pixel against albedo*env_radiance.
func FurnaceTest(albedo, envRadiance float32) scene.SceneConfig {
	return scene.SceneConfig{
		Camera:     defaultCamera(xmath.Vec3{X: 0, Y: 0, Z: -5}, xmath.Vec3{}),
		Integrator: defaultIntegrator(),
		Textures:   []texture.Texture{texture.NewConstant(xmath.Vec3{X: albedo, Y: albedo, Z: albedo})},
		BSDFs:      []bsdf.BSDF{{Kind: bsdf.KindDiffuse, Reflectance: 0, OpacityID: texture.InvalidID, BumpMapID: texture.InvalidID}},
		Instances: []scene.InstanceConfig{
			{Kind: primitive.KindSphere, Radius: 1, ToWorld: xmath.Identity4(), BSDFID: 0, MediumInt: scene.InvalidMediumID, MediumExt: scene.InvalidMediumID},
		},
		Emitters: []emitter.Emitter{{Kind: emitter.KindConstant, ConstantRadiance: xmath.Vec3{X: envRadiance, Y: envRadiance, Z: envRadiance}}},
	}
}

// EnvMapOnly returns an empty scene lit only by a small procedural
// importance-sampled environment map (a vertical two-row gradient, bright at
// the top row) — exercises KindEnvMap's CDF-based sampling and Eval/Pdf path
// specifically, as distinct from the delta-free Constant emitter the other
// demo scenes use.
func EnvMapOnly() scene.SceneConfig {
	const w, h = 4, 2
	pixels := make([]float32, w*h*3)
	for x := 0; x < w; x++ {
		setPixel(pixels, w, x, 0, xmath.Vec3{X: 4, Y: 4, Z: 5}) // top row: bright sky
		setPixel(pixels, w, x, 1, xmath.Vec3{X: 0.3, Y: 0.25, Z: 0.2}) // bottom row: dim ground
	}
	env := emitter.NewEnvMap(pixels, w, h, xmath.Identity4())

	return scene.SceneConfig{
		Camera:     defaultCamera(xmath.Vec3{X: 0, Y: 0, Z: -5}, xmath.Vec3{}),
		Integrator: defaultIntegrator(),
		Emitters:   []emitter.Emitter{{Kind: emitter.KindEnvMap, Env: env}},
	}
}

func setPixel(pixels []float32, width, x, y int, c xmath.Vec3) {
	i := (y*width + x) * 3
	pixels[i], pixels[i+1], pixels[i+2] = c.X, c.Y, c.Z
}

package scene

import (
	"math"
	"testing"

	"github.com/rkvale/tracecore/pkg/bsdf"
	"github.com/rkvale/tracecore/pkg/emitter"
	"github.com/rkvale/tracecore/pkg/texture"
	"github.com/rkvale/tracecore/pkg/xmath"
)

func baseCameraConfig() CameraConfig {
	return CameraConfig{
		Eye: xmath.Vec3{X: 0, Y: 0, Z: -5}, LookAt: xmath.Vec3{}, Up: xmath.Vec3{X: 0, Y: 1, Z: 0},
		FovX: float32(math.Pi) / 2, Width: 64, Height: 64, SPP: 4,
	}
}

func baseIntegratorConfig() IntegratorConfig {
	return IntegratorConfig{Kind: IntegratorPath, DepthMax: 4, DepthRR: 2, PdfRR: 0.95}
}

func TestBuildSingleSphereSceneSucceeds(t *testing.T) {
	cfg := SceneConfig{
		Camera:     baseCameraConfig(),
		Integrator: baseIntegratorConfig(),
		BSDFs:      []bsdf.BSDF{{Kind: bsdf.KindDiffuse, Reflectance: texture.InvalidID, OpacityID: texture.InvalidID, BumpMapID: texture.InvalidID}},
		Instances: []InstanceConfig{
			{Kind: 0 /* Sphere */, Radius: 1, ToWorld: xmath.Identity4(), BSDFID: 0, MediumInt: InvalidMediumID, MediumExt: InvalidMediumID},
		},
		Emitters: []emitter.Emitter{{Kind: emitter.KindConstant, ConstantRadiance: xmath.Vec3{X: 1, Y: 1, Z: 1}}},
	}
	s, err := Build(cfg, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(s.Instances) != 1 {
		t.Fatalf("expected 1 instance, got %d", len(s.Instances))
	}
	if s.TLAS == nil || len(s.TLAS.Nodes) == 0 {
		t.Fatal("expected a non-empty TLAS")
	}
}

func TestBuildRejectsOutOfRangeBSDFID(t *testing.T) {
	cfg := SceneConfig{
		Camera:     baseCameraConfig(),
		Integrator: baseIntegratorConfig(),
		Instances: []InstanceConfig{
			{Kind: 0, Radius: 1, ToWorld: xmath.Identity4(), BSDFID: 5, MediumInt: InvalidMediumID, MediumExt: InvalidMediumID},
		},
	}
	_, err := Build(cfg, nil)
	if err == nil {
		t.Fatal("expected an error for an out-of-range bsdf id")
	}
}

func TestBuildRejectsZeroFovX(t *testing.T) {
	cam := baseCameraConfig()
	cam.FovX = 0
	cfg := SceneConfig{Camera: cam, Integrator: baseIntegratorConfig(), Instances: []InstanceConfig{{Kind: 0, Radius: 1, ToWorld: xmath.Identity4(), BSDFID: bsdf.InvalidID, MediumInt: InvalidMediumID, MediumExt: InvalidMediumID}}}
	_, err := Build(cfg, nil)
	if err == nil {
		t.Fatal("expected an error for fov_x <= 0")
	}
}

func TestBuildRejectsNonPositiveEta(t *testing.T) {
	cfg := SceneConfig{
		Camera:     baseCameraConfig(),
		Integrator: baseIntegratorConfig(),
		BSDFs:      []bsdf.BSDF{{Kind: bsdf.KindDielectric, Eta: 0}},
		Instances:  []InstanceConfig{{Kind: 0, Radius: 1, ToWorld: xmath.Identity4(), BSDFID: 0, MediumInt: InvalidMediumID, MediumExt: InvalidMediumID}},
	}
	_, err := Build(cfg, nil)
	if err == nil {
		t.Fatal("expected an error for a dielectric with eta <= 0")
	}
}

func TestBuildCollectsAreaLightInstances(t *testing.T) {
	cfg := SceneConfig{
		Camera:     baseCameraConfig(),
		Integrator: baseIntegratorConfig(),
		Textures:   []texture.Texture{texture.NewConstant(xmath.Vec3{X: 2, Y: 2, Z: 2})},
		BSDFs:      []bsdf.BSDF{{Kind: bsdf.KindAreaLight, Radiance: 0, Weight: 1}},
		Instances: []InstanceConfig{
			{Kind: 2 /* Rectangle */, HalfExtent: xmath.Vec3{X: 1, Y: 1}, ToWorld: xmath.Translate(xmath.Vec3{X: 0, Y: 0, Z: 5}), BSDFID: 0, MediumInt: InvalidMediumID, MediumExt: InvalidMediumID},
		},
	}
	s, err := Build(cfg, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(s.areaLights) != 1 {
		t.Fatalf("expected 1 area-light instance, got %d", len(s.areaLights))
	}
	if s.LightCount() != 1 {
		t.Fatalf("expected LightCount()==1, got %d", s.LightCount())
	}
}

func TestWorldAABBOfTranslatedInstanceIsOffset(t *testing.T) {
	cfg := SceneConfig{
		Camera:     baseCameraConfig(),
		Integrator: baseIntegratorConfig(),
		BSDFs:      []bsdf.BSDF{{Kind: bsdf.KindDiffuse, OpacityID: texture.InvalidID, BumpMapID: texture.InvalidID}},
		Instances: []InstanceConfig{
			{Kind: 0, Radius: 1, ToWorld: xmath.Translate(xmath.Vec3{X: 10, Y: 0, Z: 0}), BSDFID: 0, MediumInt: InvalidMediumID, MediumExt: InvalidMediumID},
		},
	}
	s, err := Build(cfg, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	b := s.Instances[0].WorldBounds
	if b.Center().X < 9 || b.Center().X > 11 {
		t.Errorf("expected world AABB centered near x=10, got center %v", b.Center())
	}
}

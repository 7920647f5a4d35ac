package emitter

import (
	"math"
	"testing"

	"github.com/rkvale/tracecore/pkg/texture"
	"github.com/rkvale/tracecore/pkg/xmath"
)

func emptyTextures() texture.Table { return texture.Table{} }

func TestPointSample(t *testing.T) {
	e := Emitter{Kind: KindPoint, Position: xmath.Vec3{X: 0, Y: 5, Z: 0}, Intensity: xmath.Vec3{X: 4, Y: 4, Z: 4}}
	origin := xmath.Vec3{}
	s := e.Sample(origin, 0, 0, emptyTextures())
	if !s.Valid || !s.Delta {
		t.Fatal("point light sample should be valid and delta")
	}
	if math.Abs(float64(s.Distance-5)) > 1e-4 {
		t.Errorf("expected distance 5, got %f", s.Distance)
	}
	wantIntensity := float32(4.0 / 25.0)
	if math.Abs(float64(s.Value.X-wantIntensity)) > 1e-4 {
		t.Errorf("expected inverse-square falloff %f, got %f", wantIntensity, s.Value.X)
	}
}

func TestSpotFalloffInsideBeamIsFull(t *testing.T) {
	e := Emitter{
		Kind:           KindSpot,
		Position:       xmath.Vec3{X: 0, Y: 5, Z: 0},
		Intensity:      xmath.Vec3{X: 1, Y: 1, Z: 1},
		SpotDirection:  xmath.Vec3{X: 0, Y: -1, Z: 0},
		BeamWidthCos:   float32(math.Cos(0.1)),
		CutoffAngleCos: float32(math.Cos(0.5)),
		SpotTexture:    texture.InvalidID,
	}
	s := e.Sample(xmath.Vec3{}, 0, 0, emptyTextures())
	if !s.Valid {
		t.Fatal("expected valid sample directly below the spot")
	}
}

func TestSpotFalloffOutsideCutoffIsZero(t *testing.T) {
	e := Emitter{
		Kind:           KindSpot,
		Position:       xmath.Vec3{X: 0, Y: 5, Z: 0},
		Intensity:      xmath.Vec3{X: 1, Y: 1, Z: 1},
		SpotDirection:  xmath.Vec3{X: 0, Y: -1, Z: 0},
		BeamWidthCos:   float32(math.Cos(0.1)),
		CutoffAngleCos: float32(math.Cos(0.2)),
		SpotTexture:    texture.InvalidID,
	}
	// Far off-axis shading point: well outside the cutoff cone.
	s := e.Sample(xmath.Vec3{X: 100, Y: 0, Z: 0}, 0, 0, emptyTextures())
	if s.Valid {
		t.Error("expected no contribution outside the cutoff cone")
	}
}

func TestDirectionalIsDeltaWithInfiniteDistance(t *testing.T) {
	e := Emitter{Kind: KindDirectional, Direction: xmath.Vec3{X: 0, Y: -1, Z: 0}, Radiance: xmath.Vec3{X: 2, Y: 2, Z: 2}}
	s := e.Sample(xmath.Vec3{}, 0, 0, emptyTextures())
	if !s.Valid || !s.Delta {
		t.Fatal("directional light should always be a valid delta sample")
	}
	if s.Wi != (xmath.Vec3{X: 0, Y: 1, Z: 0}) {
		t.Errorf("expected wi opposite travel direction, got %v", s.Wi)
	}
	if s.Distance != maxFloat32 {
		t.Errorf("expected sentinel max distance, got %f", s.Distance)
	}
}

func TestConstantPdfIsUniformOnSphere(t *testing.T) {
	e := Emitter{Kind: KindConstant, ConstantRadiance: xmath.Vec3{X: 1, Y: 1, Z: 1}}
	wi := xmath.Vec3{X: 0, Y: 1, Z: 0}
	want := float32(1 / (4 * math.Pi))
	if got := e.Pdf(wi); math.Abs(float64(got-want)) > 1e-6 {
		t.Errorf("expected uniform sphere pdf %f, got %f", want, got)
	}
	if got := e.Eval(wi); got != e.ConstantRadiance {
		t.Errorf("expected eval to return radiance unchanged, got %v", got)
	}
}

func TestEnvMapSampleEvalPdfConsistency(t *testing.T) {
	const w, h = 8, 4
	pixels := make([]float32, w*h*3)
	for i := range pixels {
		pixels[i] = 1
	}
	// A brighter patch to exercise the importance-sampling CDFs.
	brightIdx := (1*w + 2) * 3
	pixels[brightIdx], pixels[brightIdx+1], pixels[brightIdx+2] = 20, 20, 20

	env := NewEnvMap(pixels, w, h, xmath.Identity4())
	e := Emitter{Kind: KindEnvMap, Env: env}

	for i := 0; i < 16; i++ {
		u := float32(i) / 16
		v := float32((i*7)%16) / 16
		s := e.Sample(xmath.Vec3{}, u, v, emptyTextures())
		if !s.Valid {
			continue
		}
		pdf := e.Pdf(s.Wi)
		if pdf <= 0 {
			t.Errorf("expected positive pdf for sampled direction, got %f", pdf)
		}
		if d := pdf - s.Pdf; d < -1e-4*s.Pdf || d > 1e-4*s.Pdf {
			t.Errorf("pdf(sample.Wi)=%f disagrees with sample.Pdf=%f", pdf, s.Pdf)
		}
	}
}

// TestEnvMapPdfIntegratesToOneOverSolidAngle brute-force numerically
// integrates pdfEnvMap over the full sphere for a uniform map and checks it
// lands near 1, the defining property of a solid-angle density. This is the
// class of check TestEnvMapSampleEvalPdfConsistency can't catch: that test
// only asserts pdf(sample.Wi) == sample.Pdf, which a uniformly-biased
// density still satisfies.
func TestEnvMapPdfIntegratesToOneOverSolidAngle(t *testing.T) {
	const w, h = 16, 8
	pixels := make([]float32, w*h*3)
	for i := range pixels {
		pixels[i] = 1
	}
	env := NewEnvMap(pixels, w, h, xmath.Identity4())
	e := Emitter{Kind: KindEnvMap, Env: env}

	const thetaSteps, phiSteps = 64, 128
	dTheta := math.Pi / float64(thetaSteps)
	dPhi := 2 * math.Pi / float64(phiSteps)

	var integral float64
	for i := 0; i < thetaSteps; i++ {
		theta := math.Pi * (float64(i) + 0.5) / float64(thetaSteps)
		sinTheta := math.Sin(theta)
		cosTheta := math.Cos(theta)
		for j := 0; j < phiSteps; j++ {
			phi := 2 * math.Pi * (float64(j) + 0.5) / float64(phiSteps)
			wi := xmath.Vec3{
				X: float32(sinTheta * math.Cos(phi)),
				Y: float32(cosTheta),
				Z: float32(sinTheta * math.Sin(phi)),
			}
			integral += float64(e.Pdf(wi)) * sinTheta * dTheta * dPhi
		}
	}

	if math.Abs(integral-1) > 0.05 {
		t.Errorf("expected the envmap pdf to integrate to ~1 over the sphere, got %f", integral)
	}
}

func TestEnvMapDegenerateIsInvalid(t *testing.T) {
	env := NewEnvMap(make([]float32, 3*3*3), 3, 3, xmath.Identity4())
	e := Emitter{Kind: KindEnvMap, Env: env}
	if s := e.Sample(xmath.Vec3{}, 0.4, 0.6, emptyTextures()); s.Valid {
		t.Error("an all-black env map should never produce a valid importance sample")
	}
}

package xmath

import "testing"

func TestSampleCosineHemisphereStaysInUpperHemisphere(t *testing.T) {
	for _, uv := range [][2]float32{{0, 0}, {0.25, 0.75}, {0.99, 0.01}, {0.5, 0.5}} {
		dir, pdf := SampleCosineHemisphere(uv[0], uv[1])
		if dir.Z < 0 {
			t.Errorf("sample %v landed below the hemisphere: %v", uv, dir)
		}
		if l := dir.Length(); l < 1-1e-3 || l > 1+1e-3 {
			t.Errorf("sample %v is not unit length: %v", uv, l)
		}
		if pdf <= 0 {
			t.Errorf("pdf should be positive, got %v", pdf)
		}
	}
}

func TestSampleCosineHemispherePdfMatchesCosineLaw(t *testing.T) {
	dir, pdf := SampleCosineHemisphere(0.3, 0.6)
	want := dir.Z * float32(InvPi)
	if pdf < want-tolerance || pdf > want+tolerance {
		t.Errorf("expected pdf %v, got %v", want, pdf)
	}
}

func TestSampleUniformSphereProducesUnitVectors(t *testing.T) {
	for _, uv := range [][2]float32{{0, 0}, {0.5, 0.5}, {0.9, 0.1}} {
		dir := SampleUniformSphere(uv[0], uv[1])
		if l := dir.Length(); l < 1-1e-3 || l > 1+1e-3 {
			t.Errorf("sample %v is not unit length: %v", uv, l)
		}
	}
}

func TestSampleUniformConeStaysWithinConeAngle(t *testing.T) {
	cosThetaMax := float32(0.5) // 60 degree half-angle
	for _, uv := range [][2]float32{{0, 0}, {0.5, 0.5}, {1, 1}} {
		dir, pdf := SampleUniformCone(cosThetaMax, uv[0], uv[1])
		if dir.Z < cosThetaMax-1e-4 {
			t.Errorf("sample %v escaped the cone: cosTheta=%v, min=%v", uv, dir.Z, cosThetaMax)
		}
		if pdf <= 0 {
			t.Errorf("pdf should be positive, got %v", pdf)
		}
	}
}

func TestSampleGGXVNDFReturnsAUnitNormalInTheUpperHemisphere(t *testing.T) {
	wo := Vec3{X: 0.1, Y: 0.1, Z: 0.98}.Normalize()
	for _, uv := range [][2]float32{{0.2, 0.3}, {0.7, 0.9}} {
		n := SampleGGXVNDF(wo, 0.3, 0.3, uv[0], uv[1])
		if l := n.Length(); l < 1-1e-3 || l > 1+1e-3 {
			t.Errorf("sampled normal is not unit length: %v", l)
		}
		if n.Z <= 0 {
			t.Errorf("sampled normal should face the upper hemisphere, got %v", n)
		}
	}
}

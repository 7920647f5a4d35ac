package xmath

import "testing"

const tolerance = 1e-5

func vecClose(a, b Vec3, tol float32) bool {
	return a.Sub(b).Length() <= tol
}

func TestVec3DotOfPerpendicularVectorsIsZero(t *testing.T) {
	a := Vec3{X: 1, Y: 0, Z: 0}
	b := Vec3{X: 0, Y: 1, Z: 0}
	if d := a.Dot(b); d != 0 {
		t.Errorf("expected 0, got %v", d)
	}
}

func TestVec3CrossOfXAndYIsZ(t *testing.T) {
	a := Vec3{X: 1, Y: 0, Z: 0}
	b := Vec3{X: 0, Y: 1, Z: 0}
	got := a.Cross(b)
	want := Vec3{X: 0, Y: 0, Z: 1}
	if !vecClose(got, want, tolerance) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestVec3NormalizeProducesUnitLength(t *testing.T) {
	v := Vec3{X: 3, Y: 4, Z: 0}.Normalize()
	if l := v.Length(); l < 1-tolerance || l > 1+tolerance {
		t.Errorf("expected length 1, got %v", l)
	}
}

func TestVec3NormalizeOfZeroVectorReturnsZero(t *testing.T) {
	v := Vec3{}.Normalize()
	if !v.IsZero() {
		t.Errorf("expected zero vector, got %v", v)
	}
}

func TestVec3ReflectAroundNormalFlipsIncomingDirection(t *testing.T) {
	v := Vec3{X: 1, Y: -1, Z: 0}
	n := Vec3{X: 0, Y: 1, Z: 0}
	got := v.Reflect(n)
	want := Vec3{X: 1, Y: 1, Z: 0}
	if !vecClose(got, want, tolerance) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestVec3HasNaNOrInfDetectsEachCase(t *testing.T) {
	finite := Vec3{X: 1, Y: 2, Z: 3}
	if finite.HasNaNOrInf() {
		t.Errorf("finite vector flagged as bad")
	}
	var one, zero float32 = 1, 0
	inf := Vec3{X: 1, Y: one / zero, Z: 0}
	if !inf.HasNaNOrInf() {
		t.Errorf("infinite component not flagged")
	}
	nan := Vec3{X: 0, Y: 0, Z: zero / zero}
	if !nan.HasNaNOrInf() {
		t.Errorf("NaN component not flagged")
	}
}

func TestVec3ClampRestrictsEachComponent(t *testing.T) {
	v := Vec3{X: -1, Y: 0.5, Z: 2}
	got := v.Clamp(0, 1)
	want := Vec3{X: 0, Y: 0.5, Z: 1}
	if !vecClose(got, want, tolerance) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestLuminanceOfWhiteIsOne(t *testing.T) {
	if l := (Vec3{X: 1, Y: 1, Z: 1}).Luminance(); l < 1-tolerance || l > 1+tolerance {
		t.Errorf("expected luminance 1, got %v", l)
	}
}

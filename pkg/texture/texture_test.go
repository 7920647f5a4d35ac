package texture

import (
	"testing"

	"github.com/rkvale/tracecore/pkg/xmath"
)

func TestConstantTextureIgnoresUV(t *testing.T) {
	tex := NewConstant(xmath.Vec3{X: 0.2, Y: 0.4, Z: 0.6})
	a := tex.Sample(xmath.Vec2{X: 0, Y: 0})
	b := tex.Sample(xmath.Vec2{X: 17, Y: -3})
	if a != b {
		t.Errorf("expected constant texture to ignore uv, got %v and %v", a, b)
	}
}

func TestIdentityUVTransformIsANoOp(t *testing.T) {
	uv := xmath.Vec2{X: 0.3, Y: 0.7}
	got := IdentityUV().Apply(uv)
	if got != uv {
		t.Errorf("expected identity transform to pass uv through unchanged, got %v", got)
	}
}

func TestCheckerboardAlternatesAcrossUnitCells(t *testing.T) {
	c0 := xmath.Vec3{X: 0, Y: 0, Z: 0}
	c1 := xmath.Vec3{X: 1, Y: 1, Z: 1}
	tex := NewCheckerboard(c0, c1, IdentityUV())

	cases := []struct {
		uv   xmath.Vec2
		want xmath.Vec3
	}{
		{xmath.Vec2{X: 0.1, Y: 0.1}, c0},
		{xmath.Vec2{X: 1.1, Y: 0.1}, c1},
		{xmath.Vec2{X: 0.1, Y: 1.1}, c1},
		{xmath.Vec2{X: 1.1, Y: 1.1}, c0},
		{xmath.Vec2{X: -0.1, Y: 0.1}, c1},
	}
	for _, c := range cases {
		got := tex.Sample(c.uv)
		if got != c.want {
			t.Errorf("at uv %v: expected %v, got %v", c.uv, c.want, got)
		}
	}
}

func TestBitmapSampleReturnsExactPixelAtTexelCenters(t *testing.T) {
	// 2x2 RGB bitmap: red, green on row 0 (top); blue, white on row 1 (bottom).
	pixels := []float32{
		1, 0, 0, 0, 1, 0,
		0, 0, 1, 1, 1, 1,
	}
	tex := NewBitmap(pixels, 2, 2, 3, IdentityUV())

	// v=0 is the bottom row per the bitmap's convention, so (0.25, 0.25)
	// should land on the bottom-left texel: blue.
	got := tex.Sample(xmath.Vec2{X: 0.25, Y: 0.25})
	want := xmath.Vec3{X: 0, Y: 0, Z: 1}
	if diff := got.Sub(want).Length(); diff > 1e-4 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestBitmapSampleWrapsUVModulo1(t *testing.T) {
	pixels := []float32{1, 0, 0, 0, 0, 1}
	tex := NewBitmap(pixels, 2, 1, 3, IdentityUV())

	inBounds := tex.Sample(xmath.Vec2{X: 0.25, Y: 0.5})
	wrapped := tex.Sample(xmath.Vec2{X: 1.25, Y: 0.5})
	if diff := inBounds.Sub(wrapped).Length(); diff > 1e-4 {
		t.Errorf("expected wrapped sample to match in-bounds sample, got %v vs %v", wrapped, inBounds)
	}
}

func TestBitmapSingleChannelBroadcastsToRGB(t *testing.T) {
	pixels := []float32{0.5}
	tex := NewBitmap(pixels, 1, 1, 1, IdentityUV())
	got := tex.Sample(xmath.Vec2{X: 0.5, Y: 0.5})
	want := xmath.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	if diff := got.Sub(want).Length(); diff > 1e-4 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTableSampleOfInvalidIDReturnsZero(t *testing.T) {
	table := Table{Textures: []Texture{NewConstant(xmath.Vec3{X: 1, Y: 1, Z: 1})}}
	got := table.Sample(InvalidID, xmath.Vec2{})
	if !got.IsZero() {
		t.Errorf("expected zero for InvalidID, got %v", got)
	}
}

func TestTableSampleResolvesAValidID(t *testing.T) {
	color := xmath.Vec3{X: 0.1, Y: 0.2, Z: 0.3}
	table := Table{Textures: []Texture{NewConstant(color)}}
	got := table.Sample(ID(0), xmath.Vec2{})
	if got != color {
		t.Errorf("expected %v, got %v", color, got)
	}
}

func TestTableValidRejectsOutOfRangeIDs(t *testing.T) {
	table := Table{Textures: []Texture{NewConstant(xmath.Vec3{})}}
	if !table.Valid(InvalidID) {
		t.Errorf("InvalidID should always be valid")
	}
	if !table.Valid(ID(0)) {
		t.Errorf("in-range id should be valid")
	}
	if table.Valid(ID(5)) {
		t.Errorf("out-of-range id should be invalid")
	}
}

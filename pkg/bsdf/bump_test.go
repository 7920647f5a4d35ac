package bsdf

import (
	"testing"

	"github.com/rkvale/tracecore/pkg/texture"
	"github.com/rkvale/tracecore/pkg/xmath"
)

func TestPerturbNormalNoBumpMapIsIdentity(t *testing.T) {
	tex := constTable(xmath.Vec3{X: 1, Y: 1, Z: 1})
	b := BSDF{Kind: KindDiffuse, BumpMapID: texture.InvalidID}
	n := xmath.Vec3{X: 0, Y: 0, Z: 1}
	tangent := xmath.Vec3{X: 1, Y: 0, Z: 0}
	bitangent := xmath.Vec3{X: 0, Y: 1, Z: 0}
	got := b.PerturbNormal(n, tangent, bitangent, xmath.Vec2{X: 0.5, Y: 0.5}, tex)
	if got != n {
		t.Errorf("expected untouched normal with no bumpmap, got %v", got)
	}
}

func TestPerturbNormalConstantHeightIsIdentity(t *testing.T) {
	tex := constTable(xmath.Vec3{X: 0.7, Y: 0.7, Z: 0.7})
	b := BSDF{Kind: KindDiffuse, BumpMapID: 0}
	n := xmath.Vec3{X: 0, Y: 0, Z: 1}
	tangent := xmath.Vec3{X: 1, Y: 0, Z: 0}
	bitangent := xmath.Vec3{X: 0, Y: 1, Z: 0}
	got := b.PerturbNormal(n, tangent, bitangent, xmath.Vec2{X: 0.5, Y: 0.5}, tex)
	if got != n {
		t.Errorf("a constant-height bumpmap has zero gradient and should leave the normal untouched, got %v", got)
	}
}

func TestPerturbNormalTiltsTowardIncreasingHeight(t *testing.T) {
	// A bitmap whose left half is dark and right half is bright: the u
	// gradient is positive, so the perturbed normal should tilt away from
	// +tangent (toward -tangent), per the -dh/du*tangent term.
	pixels := []float32{
		0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1,
		0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1,
	}
	bitmap := texture.NewBitmap(pixels, 4, 2, 3, texture.IdentityUV())
	tex := texture.Table{Textures: []texture.Texture{bitmap}}
	b := BSDF{Kind: KindDiffuse, BumpMapID: 0}

	n := xmath.Vec3{X: 0, Y: 0, Z: 1}
	tangent := xmath.Vec3{X: 1, Y: 0, Z: 0}
	bitangent := xmath.Vec3{X: 0, Y: 1, Z: 0}
	got := b.PerturbNormal(n, tangent, bitangent, xmath.Vec2{X: 0.5, Y: 0.5}, tex)
	if got == n {
		t.Fatal("expected the normal to tilt under a non-constant bumpmap")
	}
	if got.X >= 0 {
		t.Errorf("expected the perturbed normal to tilt toward -tangent (X<0) under an increasing-u height field, got %v", got)
	}
	if d := got.Length() - 1; d < -1e-4 || d > 1e-4 {
		t.Errorf("perturbed normal must stay unit length, got length %v", got.Length())
	}
}

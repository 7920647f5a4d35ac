// Package texture implements the closed set of spatially-varying inputs fed
// to BSDFs and emitters: constant color, a procedural checkerboard, and a
// bilinearly-filtered bitmap. Textures are addressed by index (see
// pkg/scene) rather than by pointer, matching the arena-of-ids design used
// across the core's object model.
package texture

import (
	"golang.org/x/image/math/f32"

	"github.com/rkvale/tracecore/pkg/xmath"
)

// ID indexes into a scene's texture table. InvalidID marks "absent".
type ID uint32

const InvalidID ID = ^ID(0)

// Kind tags the closed texture variant set (spec §3/§4.3).
type Kind uint8

const (
	KindConstant Kind = iota
	KindCheckerboard
	KindBitmap
)

// UVTransform is the affine 2x3 transform applied to incoming UVs before
// sampling. It's exactly golang.org/x/image/math/f32.Aff3's layout: applying
// u' = m[0]*u + m[1]*v + m[2], v' = m[3]*u + m[4]*v + m[5].
type UVTransform f32.Aff3

func IdentityUV() UVTransform { return UVTransform{1, 0, 0, 0, 1, 0} }

func (t UVTransform) Apply(uv xmath.Vec2) xmath.Vec2 {
	return xmath.Vec2{
		X: t[0]*uv.X + t[1]*uv.Y + t[2],
		Y: t[3]*uv.X + t[4]*uv.Y + t[5],
	}
}

// Texture is a tagged union over the closed variant set; only the fields
// relevant to Kind are meaningful.
type Texture struct {
	Kind Kind

	// Constant
	Color xmath.Vec3

	// Checkerboard
	C0, C1 xmath.Vec3
	ToUV   UVTransform

	// Bitmap
	Pixels   []float32 // row-major, Channels floats per pixel
	Width    int
	Height   int
	Channels int // 1, 3, or 4
}

func NewConstant(color xmath.Vec3) Texture {
	return Texture{Kind: KindConstant, Color: color}
}

func NewCheckerboard(c0, c1 xmath.Vec3, toUV UVTransform) Texture {
	return Texture{Kind: KindCheckerboard, C0: c0, C1: c1, ToUV: toUV}
}

func NewBitmap(pixels []float32, width, height, channels int, toUV UVTransform) Texture {
	return Texture{Kind: KindBitmap, Pixels: pixels, Width: width, Height: height, Channels: channels, ToUV: toUV}
}

// Sample evaluates the texture at the given (already shading-space) uv.
func (t Texture) Sample(uv xmath.Vec2) xmath.Vec3 {
	switch t.Kind {
	case KindConstant:
		return t.Color
	case KindCheckerboard:
		return t.sampleCheckerboard(uv)
	case KindBitmap:
		return t.sampleBitmap(uv)
	default:
		return xmath.Vec3{}
	}
}

func (t Texture) sampleCheckerboard(uv xmath.Vec2) xmath.Vec3 {
	p := t.ToUV.Apply(uv)
	fu := floorInt(p.X)
	fv := floorInt(p.Y)
	if (fu+fv)%2 == 0 {
		return t.C0
	}
	return t.C1
}

func floorInt(x float32) int {
	i := int(x)
	if x < 0 && float32(i) != x {
		i--
	}
	return i
}

// sampleBitmap wraps uv modulo 1 (allowing negatives) and bilinearly filters.
func (t Texture) sampleBitmap(uv xmath.Vec2) xmath.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return xmath.Vec3{}
	}
	p := t.ToUV.Apply(uv)
	u := wrap01(p.X)
	v := wrap01(p.Y)

	// Image rows run top-to-bottom; v=0 is the bottom of the unit square.
	fx := u*float32(t.Width) - 0.5
	fy := (1-v)*float32(t.Height) - 0.5

	x0 := floorInt(fx)
	y0 := floorInt(fy)
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := t.pixelWrapped(x0, y0)
	c10 := t.pixelWrapped(x0+1, y0)
	c01 := t.pixelWrapped(x0, y0+1)
	c11 := t.pixelWrapped(x0+1, y0+1)

	top := xmath.Lerp3(c00, c10, tx)
	bottom := xmath.Lerp3(c01, c11, tx)
	return xmath.Lerp3(top, bottom, ty)
}

func (t Texture) pixelWrapped(x, y int) xmath.Vec3 {
	x = wrapInt(x, t.Width)
	y = wrapInt(y, t.Height)
	i := (y*t.Width + x) * t.Channels
	switch t.Channels {
	case 1:
		g := t.Pixels[i]
		return xmath.Vec3{X: g, Y: g, Z: g}
	case 4:
		return xmath.Vec3{X: t.Pixels[i], Y: t.Pixels[i+1], Z: t.Pixels[i+2]}
	default: // 3
		return xmath.Vec3{X: t.Pixels[i], Y: t.Pixels[i+1], Z: t.Pixels[i+2]}
	}
}

func wrapInt(x, n int) int {
	x %= n
	if x < 0 {
		x += n
	}
	return x
}

func wrap01(x float32) float32 {
	f := x - float32(floorInt(x))
	if f < 0 {
		f += 1
	}
	return f
}

// Table owns a scene's texture array and resolves ids, including the
// InvalidID "absent" sentinel used by BSDF opacity/bumpmap references.
type Table struct {
	Textures []Texture
}

func (t Table) Sample(id ID, uv xmath.Vec2) xmath.Vec3 {
	if id == InvalidID || int(id) >= len(t.Textures) {
		return xmath.Vec3{}
	}
	return t.Textures[id].Sample(uv)
}

func (t Table) Valid(id ID) bool {
	return id == InvalidID || int(id) < len(t.Textures)
}

package xmath

import "math"

// Vec3 is a 3-component float32 vector used throughout the core for points,
// directions, and colors.
type Vec3 struct {
	X, Y, Z float32
}

func NewVec3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func Splat3(v float32) Vec3 { return Vec3{v, v, v} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Mul is component-wise multiplication, used for color modulation (e.g. throughput *= albedo).
func (v Vec3) Mul(o Vec3) Vec3      { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Neg() Vec3            { return Vec3{-v.X, -v.Y, -v.Z} }
func (v Vec3) Div(o Vec3) Vec3      { return Vec3{v.X / o.X, v.Y / o.Y, v.Z / o.Z} }

func (v Vec3) Dot(o Vec3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) LengthSquared() float32 { return v.Dot(v) }
func (v Vec3) Length() float32        { return float32(math.Sqrt(float64(v.LengthSquared()))) }

func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Luminance returns the perceptual (Rec. 709) luminance of a color-valued Vec3.
func (v Vec3) Luminance() float32 {
	return 0.2126*v.X + 0.7152*v.Y + 0.0722*v.Z
}

func (v Vec3) MaxComponent() float32 {
	m := v.X
	if v.Y > m {
		m = v.Y
	}
	if v.Z > m {
		m = v.Z
	}
	return m
}

func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// HasNaNOrInf reports whether any component is non-finite, used by the
// integrator's NumericFailure bookkeeping (spec §7).
func (v Vec3) HasNaNOrInf() bool {
	return isBad(v.X) || isBad(v.Y) || isBad(v.Z)
}

func isBad(f float32) bool {
	return math.IsNaN(float64(f)) || math.IsInf(float64(f), 0)
}

// Clamp clamps each component to [lo, hi].
func (v Vec3) Clamp(lo, hi float32) Vec3 {
	c := func(x float32) float32 {
		if x < lo {
			return lo
		}
		if x > hi {
			return hi
		}
		return x
	}
	return Vec3{c(v.X), c(v.Y), c(v.Z)}
}

// Reflect reflects v around the normal n: r = v - 2*dot(v,n)*n.
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

func AbsCos(v Vec3) float32 {
	if v.Z < 0 {
		return -v.Z
	}
	return v.Z
}

func Lerp3(a, b Vec3, t float32) Vec3 {
	return a.Scale(1 - t).Add(b.Scale(t))
}

func Min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func Max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func Clamp32(x, lo, hi float32) float32 {
	return Max32(lo, Min32(hi, x))
}

func MinVec3(a, b Vec3) Vec3 {
	return Vec3{Min32(a.X, b.X), Min32(a.Y, b.Y), Min32(a.Z, b.Z)}
}

func MaxVec3(a, b Vec3) Vec3 {
	return Vec3{Max32(a.X, b.X), Max32(a.Y, b.Y), Max32(a.Z, b.Z)}
}

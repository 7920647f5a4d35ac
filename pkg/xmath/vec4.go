package xmath

// Vec4 is a homogeneous 4-component vector used when multiplying through Mat4.
type Vec4 struct {
	X, Y, Z, W float32
}

func NewVec4(x, y, z, w float32) Vec4 { return Vec4{X: x, Y: y, Z: z, W: w} }

func (v Vec4) Vec3() Vec3 { return Vec3{v.X, v.Y, v.Z} }

package xmath

// Vec2 is a 2-component float32 vector, used for UVs and 2D sample pairs.
type Vec2 struct {
	X, Y float32
}

func NewVec2(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Floor returns the component-wise floor, used by texture wrap/checker logic.
func (v Vec2) Floor() Vec2 {
	return Vec2{X: floor32(v.X), Y: floor32(v.Y)}
}

func floor32(x float32) float32 {
	i := float32(int64(x))
	if x < 0 && i != x {
		i--
	}
	return i
}

package xmath

import "math"

// Mat4 is a 4x4 row-major matrix.
type Mat4 struct {
	M [4][4]float32
}

func Identity4() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m.M[i][i] = 1
	}
	return m
}

func (a Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a.M[i][k] * b.M[k][j]
			}
			r.M[i][j] = sum
		}
	}
	return r
}

func (a Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: a.M[0][0]*v.X + a.M[0][1]*v.Y + a.M[0][2]*v.Z + a.M[0][3]*v.W,
		Y: a.M[1][0]*v.X + a.M[1][1]*v.Y + a.M[1][2]*v.Z + a.M[1][3]*v.W,
		Z: a.M[2][0]*v.X + a.M[2][1]*v.Y + a.M[2][2]*v.Z + a.M[2][3]*v.W,
		W: a.M[3][0]*v.X + a.M[3][1]*v.Y + a.M[3][2]*v.Z + a.M[3][3]*v.W,
	}
}

// TransformPoint applies the full affine transform, including translation.
func TransformPoint(m Mat4, p Vec3) Vec3 {
	return m.MulVec4(Vec4{p.X, p.Y, p.Z, 1}).Vec3()
}

// TransformVector applies only the upper-left 3x3 block; it does not translate.
func TransformVector(m Mat4, v Vec3) Vec3 {
	return Vec3{
		X: m.M[0][0]*v.X + m.M[0][1]*v.Y + m.M[0][2]*v.Z,
		Y: m.M[1][0]*v.X + m.M[1][1]*v.Y + m.M[1][2]*v.Z,
		Z: m.M[2][0]*v.X + m.M[2][1]*v.Y + m.M[2][2]*v.Z,
	}
}

// TransformNormal applies the inverse-transpose of m's 3x3 block, the correct
// transform for surface normals under non-uniform scale.
func TransformNormal(invTranspose Mat4, n Vec3) Vec3 {
	return TransformVector(invTranspose, n).Normalize()
}

// TransformPoint is the method form of the TransformPoint free function.
func (a Mat4) TransformPoint(p Vec3) Vec3 { return TransformPoint(a, p) }

// TransformVector is the method form of the TransformVector free function.
func (a Mat4) TransformVector(v Vec3) Vec3 { return TransformVector(a, v) }

func Translate(t Vec3) Mat4 {
	m := Identity4()
	m.M[0][3] = t.X
	m.M[1][3] = t.Y
	m.M[2][3] = t.Z
	return m
}

func Scale(s Vec3) Mat4 {
	m := Identity4()
	m.M[0][0] = s.X
	m.M[1][1] = s.Y
	m.M[2][2] = s.Z
	return m
}

// Rotate builds a rotation matrix of angleRad around axis (right-handed, radians).
func Rotate(axis Vec3, angleRad float32) Mat4 {
	a := axis.Normalize()
	s := float32(math.Sin(float64(angleRad)))
	c := float32(math.Cos(float64(angleRad)))
	t := 1 - c

	m := Identity4()
	m.M[0][0] = t*a.X*a.X + c
	m.M[0][1] = t*a.X*a.Y - s*a.Z
	m.M[0][2] = t*a.X*a.Z + s*a.Y
	m.M[1][0] = t*a.X*a.Y + s*a.Z
	m.M[1][1] = t*a.Y*a.Y + c
	m.M[1][2] = t*a.Y*a.Z - s*a.X
	m.M[2][0] = t*a.X*a.Z - s*a.Y
	m.M[2][1] = t*a.Y*a.Z + s*a.X
	m.M[2][2] = t*a.Z*a.Z + c
	return m
}

// LookAtLH builds a left-handed view-to-world basis matrix: camera space +Z
// points toward target, +Y is up. Used to build the camera ray basis.
func LookAtLH(eye, target, up Vec3) Mat4 {
	zAxis := target.Sub(eye).Normalize()
	xAxis := up.Normalize().Cross(zAxis).Normalize()
	yAxis := zAxis.Cross(xAxis)

	m := Identity4()
	m.M[0][0], m.M[1][0], m.M[2][0] = xAxis.X, xAxis.Y, xAxis.Z
	m.M[0][1], m.M[1][1], m.M[2][1] = yAxis.X, yAxis.Y, yAxis.Z
	m.M[0][2], m.M[1][2], m.M[2][2] = zAxis.X, zAxis.Y, zAxis.Z
	m.M[0][3], m.M[1][3], m.M[2][3] = eye.X, eye.Y, eye.Z
	return m
}

// Inverse computes the general 4x4 matrix inverse via cofactor expansion.
// Scenes are small in instance count; this runs once per instance at build time.
func (a Mat4) Inverse() Mat4 {
	m := a.M
	inv := [16]float32{}
	flat := func(r, c int) float32 { return m[r][c] }

	s0 := flat(0, 0)*flat(1, 1) - flat(1, 0)*flat(0, 1)
	s1 := flat(0, 0)*flat(1, 2) - flat(1, 0)*flat(0, 2)
	s2 := flat(0, 0)*flat(1, 3) - flat(1, 0)*flat(0, 3)
	s3 := flat(0, 1)*flat(1, 2) - flat(1, 1)*flat(0, 2)
	s4 := flat(0, 1)*flat(1, 3) - flat(1, 1)*flat(0, 3)
	s5 := flat(0, 2)*flat(1, 3) - flat(1, 2)*flat(0, 3)
	c5 := flat(2, 2)*flat(3, 3) - flat(3, 2)*flat(2, 3)
	c4 := flat(2, 1)*flat(3, 3) - flat(3, 1)*flat(2, 3)
	c3 := flat(2, 1)*flat(3, 2) - flat(3, 1)*flat(2, 2)
	c2 := flat(2, 0)*flat(3, 3) - flat(3, 0)*flat(2, 3)
	c1 := flat(2, 0)*flat(3, 2) - flat(3, 0)*flat(2, 2)
	c0 := flat(2, 0)*flat(3, 1) - flat(3, 0)*flat(2, 1)

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return Identity4()
	}
	invDet := 1 / det

	inv[0] = (flat(1, 1)*c5 - flat(1, 2)*c4 + flat(1, 3)*c3) * invDet
	inv[1] = (-flat(0, 1)*c5 + flat(0, 2)*c4 - flat(0, 3)*c3) * invDet
	inv[2] = (flat(3, 1)*s5 - flat(3, 2)*s4 + flat(3, 3)*s3) * invDet
	inv[3] = (-flat(2, 1)*s5 + flat(2, 2)*s4 - flat(2, 3)*s3) * invDet

	inv[4] = (-flat(1, 0)*c5 + flat(1, 2)*c2 - flat(1, 3)*c1) * invDet
	inv[5] = (flat(0, 0)*c5 - flat(0, 2)*c2 + flat(0, 3)*c1) * invDet
	inv[6] = (-flat(3, 0)*s5 + flat(3, 2)*s2 - flat(3, 3)*s1) * invDet
	inv[7] = (flat(2, 0)*s5 - flat(2, 2)*s2 + flat(2, 3)*s1) * invDet

	inv[8] = (flat(1, 0)*c4 - flat(1, 1)*c2 + flat(1, 3)*c0) * invDet
	inv[9] = (-flat(0, 0)*c4 + flat(0, 1)*c2 - flat(0, 3)*c0) * invDet
	inv[10] = (flat(3, 0)*s4 - flat(3, 1)*s2 + flat(3, 3)*s0) * invDet
	inv[11] = (-flat(2, 0)*s4 + flat(2, 1)*s2 - flat(2, 3)*s0) * invDet

	inv[12] = (-flat(1, 0)*c3 + flat(1, 1)*c1 - flat(1, 2)*c0) * invDet
	inv[13] = (flat(0, 0)*c3 - flat(0, 1)*c1 + flat(0, 2)*c0) * invDet
	inv[14] = (-flat(3, 0)*s3 + flat(3, 1)*s1 - flat(3, 2)*s0) * invDet
	inv[15] = (flat(2, 0)*s3 - flat(2, 1)*s1 + flat(2, 2)*s0) * invDet

	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out.M[r][c] = inv[r*4+c]
		}
	}
	return out
}

// Transpose returns the matrix transpose.
func (a Mat4) Transpose() Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r.M[i][j] = a.M[j][i]
		}
	}
	return r
}

// NormalMatrix returns the inverse-transpose used to transform normals.
func NormalMatrix(worldToLocal Mat4) Mat4 {
	return worldToLocal.Transpose()
}

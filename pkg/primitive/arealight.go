package primitive

import (
	"math"

	"github.com/rkvale/tracecore/pkg/xmath"
)

// AreaSample is a point drawn uniformly over a primitive's surface, used by
// the implicit area-light emitter wrapper (spec §3: "an implicit area-light
// emitter wrapper per instance whose BSDF is of variant AreaLight"), in the
// same shape df07's SphereLight/QuadLight/DiscLight sampling returns.
type AreaSample struct {
	Point   xmath.Vec3
	Normal  xmath.Vec3
	AreaPdf float32 // density with respect to surface area, 1/total_area for uniform sampling
	Valid   bool
}

func flipIfNeeded(n xmath.Vec3, flip bool) xmath.Vec3 {
	if flip {
		return n.Neg()
	}
	return n
}

// SampleArea draws a uniform point on the primitive's surface. u1 selects a
// sub-element (cube face, mesh triangle) where the shape has more than one;
// u2,u3 place the point within that element. Cube and Mesh are the only
// variants that need all three; the rest ignore u1.
func (p *Primitive) SampleArea(u1, u2, u3 float32) AreaSample {
	switch p.Kind {
	case KindSphere:
		return p.sampleAreaSphere(u2, u3)
	case KindRectangle:
		return p.sampleAreaRectangle(u2, u3)
	case KindDisk:
		return p.sampleAreaDisk(u2, u3)
	case KindCube:
		return p.sampleAreaCube(u1, u2, u3)
	case KindCylinder:
		return p.sampleAreaCylinder(u2, u3)
	case KindMesh:
		return p.sampleAreaMesh(u1, u2, u3)
	default:
		return AreaSample{}
	}
}

// AreaPdfAt returns the surface-area sampling density SampleArea would have
// assigned to hit, used for MIS weighting when a BSDF-sampled ray happens to
// land on an area-light instance (spec §4.9's "area_pdf_for_this_emitter").
func (p *Primitive) AreaPdfAt(hit LocalHit) float32 {
	switch p.Kind {
	case KindSphere:
		return 1 / (4 * float32(xmath.Pi) * p.Radius * p.Radius)
	case KindRectangle:
		return 1 / (4 * p.HalfExtent.X * p.HalfExtent.Y)
	case KindDisk:
		return 1 / (float32(xmath.Pi) * p.Radius * p.Radius)
	case KindCube:
		return 1 / cubeSurfaceArea(p.HalfExtent)
	case KindCylinder:
		return 1 / (2 * float32(xmath.Pi) * p.Radius * p.Height)
	case KindMesh:
		area := triangleArea(p.Mesh, int(hit.TriangleIndex))
		if area <= 0 {
			return 0
		}
		return 1 / (float32(p.Mesh.TriangleCount()) * area)
	default:
		return 0
	}
}

func (p *Primitive) sampleAreaSphere(u2, u3 float32) AreaSample {
	dir := xmath.SampleUniformSphere(u2, u3)
	point := p.Center.Add(dir.Scale(p.Radius))
	normal := flipIfNeeded(dir, p.FlipNormals)
	area := 4 * float32(xmath.Pi) * p.Radius * p.Radius
	if area <= 0 {
		return AreaSample{}
	}
	return AreaSample{Point: point, Normal: normal, AreaPdf: 1 / area, Valid: true}
}

func (p *Primitive) sampleAreaRectangle(u2, u3 float32) AreaSample {
	x := (2*u2 - 1) * p.HalfExtent.X
	y := (2*u3 - 1) * p.HalfExtent.Y
	point := xmath.Vec3{X: x, Y: y, Z: 0}
	outward := xmath.Vec3{Z: 1}
	normal := flipIfNeeded(outward, p.FlipNormals)
	area := 4 * p.HalfExtent.X * p.HalfExtent.Y
	if area <= 0 {
		return AreaSample{}
	}
	return AreaSample{Point: point, Normal: normal, AreaPdf: 1 / area, Valid: true}
}

func (p *Primitive) sampleAreaDisk(u2, u3 float32) AreaSample {
	r := p.Radius * float32(math.Sqrt(float64(u2)))
	phi := float32(xmath.Pi2) * u3
	point := xmath.Vec3{X: r * float32(math.Cos(float64(phi))), Y: r * float32(math.Sin(float64(phi))), Z: 0}
	outward := xmath.Vec3{Z: 1}
	normal := flipIfNeeded(outward, p.FlipNormals)
	area := float32(xmath.Pi) * p.Radius * p.Radius
	if area <= 0 {
		return AreaSample{}
	}
	return AreaSample{Point: point, Normal: normal, AreaPdf: 1 / area, Valid: true}
}

// cubeFaceAreas returns the six face areas in +X,-X,+Y,-Y,+Z,-Z order.
func cubeFaceAreas(half xmath.Vec3) [6]float32 {
	ax := 4 * half.Y * half.Z
	ay := 4 * half.X * half.Z
	az := 4 * half.X * half.Y
	return [6]float32{ax, ax, ay, ay, az, az}
}

func cubeSurfaceArea(half xmath.Vec3) float32 {
	areas := cubeFaceAreas(half)
	var total float32
	for _, a := range areas {
		total += a
	}
	return total
}

func (p *Primitive) sampleAreaCube(u1, u2, u3 float32) AreaSample {
	areas := cubeFaceAreas(p.HalfExtent)
	total := cubeSurfaceArea(p.HalfExtent)
	if total <= 0 {
		return AreaSample{}
	}
	target := u1 * total
	face := 0
	for i, a := range areas {
		if target < a || i == len(areas)-1 {
			face = i
			break
		}
		target -= a
	}

	axis := face / 2
	sign := float32(1)
	if face%2 == 1 {
		sign = -1
	}
	var point, outward xmath.Vec3
	switch axis {
	case 0:
		point = xmath.Vec3{X: sign * p.HalfExtent.X, Y: (2*u2 - 1) * p.HalfExtent.Y, Z: (2*u3 - 1) * p.HalfExtent.Z}
		outward = xmath.Vec3{X: sign}
	case 1:
		point = xmath.Vec3{X: (2*u2 - 1) * p.HalfExtent.X, Y: sign * p.HalfExtent.Y, Z: (2*u3 - 1) * p.HalfExtent.Z}
		outward = xmath.Vec3{Y: sign}
	default:
		point = xmath.Vec3{X: (2*u2 - 1) * p.HalfExtent.X, Y: (2*u3 - 1) * p.HalfExtent.Y, Z: sign * p.HalfExtent.Z}
		outward = xmath.Vec3{Z: sign}
	}
	normal := flipIfNeeded(outward, p.FlipNormals)
	return AreaSample{Point: point, Normal: normal, AreaPdf: 1 / total, Valid: true}
}

func (p *Primitive) sampleAreaCylinder(u2, u3 float32) AreaSample {
	phi := float32(xmath.Pi2) * u2
	z := u3 * p.Height
	outward := xmath.Vec3{X: float32(math.Cos(float64(phi))), Y: float32(math.Sin(float64(phi))), Z: 0}
	point := xmath.Vec3{X: p.Radius * outward.X, Y: p.Radius * outward.Y, Z: z}
	normal := flipIfNeeded(outward, p.FlipNormals)
	area := 2 * float32(xmath.Pi) * p.Radius * p.Height
	if area <= 0 {
		return AreaSample{}
	}
	return AreaSample{Point: point, Normal: normal, AreaPdf: 1 / area, Valid: true}
}

func triangleArea(m *Mesh, tri int) float32 {
	if m == nil || tri < 0 || tri >= m.TriangleCount() {
		return 0
	}
	i0, i1, i2 := m.Indices[tri*3], m.Indices[tri*3+1], m.Indices[tri*3+2]
	v0, v1, v2 := m.Positions[i0], m.Positions[i1], m.Positions[i2]
	return v1.Sub(v0).Cross(v2.Sub(v0)).Length() * 0.5
}

// sampleAreaMesh picks a triangle uniformly (per spec §4.5's "uniform
// selection is the specified behavior" license, applied here to triangles
// the same way it's applied to emitter selection) and a uniform point within
// it via the standard sqrt-based barycentric warp.
func (p *Primitive) sampleAreaMesh(u1, u2, u3 float32) AreaSample {
	m := p.Mesh
	n := m.TriangleCount()
	if n == 0 {
		return AreaSample{}
	}
	tri := int(u1 * float32(n))
	if tri >= n {
		tri = n - 1
	}
	area := triangleArea(m, tri)
	if area <= 0 {
		return AreaSample{}
	}

	su0 := float32(math.Sqrt(float64(u2)))
	b0 := 1 - su0
	b1 := u3 * su0
	b2 := 1 - b0 - b1

	i0, i1, i2 := m.Indices[tri*3], m.Indices[tri*3+1], m.Indices[tri*3+2]
	v0, v1, v2 := m.Positions[i0], m.Positions[i1], m.Positions[i2]
	point := v0.Scale(b0).Add(v1.Scale(b1)).Add(v2.Scale(b2))

	faceNormal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
	shading := faceNormal
	if len(m.Normals) > 0 {
		n0, n1, n2 := m.Normals[i0], m.Normals[i1], m.Normals[i2]
		shading = n0.Scale(b0).Add(n1.Scale(b1)).Add(n2.Scale(b2)).Normalize()
	}
	normal := flipIfNeeded(shading, p.FlipNormals)

	return AreaSample{Point: point, Normal: normal, AreaPdf: 1 / (float32(n) * area), Valid: true}
}

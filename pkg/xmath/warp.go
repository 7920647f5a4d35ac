package xmath

import "math"

const Pi = math.Pi
const InvPi = 1 / math.Pi
const Pi2 = 2 * math.Pi

// SampleCosineHemisphere returns a direction in the local +Z hemisphere,
// cosine-weighted, via the Malley/concentric-disk construction, plus its pdf.
func SampleCosineHemisphere(u, v float32) (dir Vec3, pdf float32) {
	d := sampleUnitDiskConcentric(u, v)
	z := float32(math.Sqrt(math.Max(0, float64(1-d.X*d.X-d.Y*d.Y))))
	dir = Vec3{d.X, d.Y, z}
	pdf = z * float32(InvPi)
	return
}

func sampleUnitDiskConcentric(u, v float32) Vec2 {
	ox, oy := 2*u-1, 2*v-1
	if ox == 0 && oy == 0 {
		return Vec2{}
	}
	var theta, r float32
	if abs32(ox) > abs32(oy) {
		r = ox
		theta = (float32(Pi) / 4) * (oy / ox)
	} else {
		r = oy
		theta = float32(Pi)/2 - (float32(Pi)/4)*(ox/oy)
	}
	return Vec2{r * cos32(theta), r * sin32(theta)}
}

// SampleUniformSphere returns a direction uniformly distributed on the unit sphere.
func SampleUniformSphere(u, v float32) Vec3 {
	z := 1 - 2*u
	r := float32(math.Sqrt(math.Max(0, float64(1-z*z))))
	phi := float32(Pi2) * v
	return Vec3{r * cos32(phi), r * sin32(phi), z}
}

// SampleUniformCone samples a direction within a cone of half-angle
// acos(cosThetaMax), in the local frame with the cone axis along +Z.
func SampleUniformCone(cosThetaMax, u, v float32) (dir Vec3, pdf float32) {
	cosTheta := 1 - u*(1-cosThetaMax)
	sinTheta := float32(math.Sqrt(math.Max(0, float64(1-cosTheta*cosTheta))))
	phi := float32(Pi2) * v
	dir = Vec3{sinTheta * cos32(phi), sinTheta * sin32(phi), cosTheta}
	pdf = 1 / (float32(Pi2) * (1 - cosThetaMax))
	return
}

// SampleGGXVNDF importance-samples the visible normal distribution for the
// GGX microfacet model (Heitz 2018, "Sampling the GGX Distribution of
// Visible Normals") in the local frame, anisotropic in (alphaU, alphaV).
// wo must be in the upper hemisphere (wo.Z > 0).
func SampleGGXVNDF(wo Vec3, alphaU, alphaV, u, v float32) Vec3 {
	vh := Vec3{alphaU * wo.X, alphaV * wo.Y, wo.Z}.Normalize()

	lensq := vh.X*vh.X + vh.Y*vh.Y
	var t1 Vec3
	if lensq > 0 {
		t1 = Vec3{-vh.Y, vh.X, 0}.Scale(1 / float32(math.Sqrt(float64(lensq))))
	} else {
		t1 = Vec3{1, 0, 0}
	}
	t2 := vh.Cross(t1)

	r := float32(math.Sqrt(float64(u)))
	phi := float32(Pi2) * v
	p1 := r * cos32(phi)
	p2 := r * sin32(phi)
	s := float32(0.5) * (1 + vh.Z)
	p2 = (1-s)*float32(math.Sqrt(math.Max(0, float64(1-p1*p1)))) + s*p2

	nh := t1.Scale(p1).Add(t2.Scale(p2)).Add(vh.Scale(float32(math.Sqrt(math.Max(0, float64(1-p1*p1-p2*p2))))))

	ne := Vec3{alphaU * nh.X, alphaV * nh.Y, Max32(1e-6, nh.Z)}.Normalize()
	return ne
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func sin32(x float32) float32 { return float32(math.Sin(float64(x))) }
func cos32(x float32) float32 { return float32(math.Cos(float64(x))) }

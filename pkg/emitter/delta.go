package emitter

import (
	"github.com/rkvale/tracecore/pkg/texture"
	"github.com/rkvale/tracecore/pkg/xmath"
)

func (e *Emitter) samplePoint(origin xmath.Vec3) Sample {
	toLight := e.Position.Sub(origin)
	dist2 := toLight.LengthSquared()
	if dist2 <= 0 {
		return Sample{}
	}
	dist := toLight.Length()
	wi := toLight.Scale(1 / dist)
	return Sample{Wi: wi, Distance: dist, Value: e.Intensity.Scale(1 / dist2), Delta: true, Valid: true}
}

func (e *Emitter) sampleSpot(origin xmath.Vec3, tex texture.Table) Sample {
	toLight := e.Position.Sub(origin)
	dist2 := toLight.LengthSquared()
	if dist2 <= 0 {
		return Sample{}
	}
	dist := toLight.Length()
	wi := toLight.Scale(1 / dist)

	// cosTheta measured between the beam axis and the direction from the
	// light to the shading point (i.e. -wi), matching the spot's own frame.
	cosTheta := e.SpotDirection.Dot(wi.Neg())
	falloff := spotFalloff(cosTheta, e.BeamWidthCos, e.CutoffAngleCos)
	if falloff <= 0 {
		return Sample{}
	}
	color := xmath.Vec3{X: 1, Y: 1, Z: 1}
	if e.SpotTexture != texture.InvalidID {
		color = tex.Sample(e.SpotTexture, xmath.Vec2{})
	}
	value := e.Intensity.Scale(falloff / dist2).Mul(color)
	return Sample{Wi: wi, Distance: dist, Value: value, Delta: true, Valid: true}
}

// spotFalloff is 1 inside the beam, 0 outside the cutoff cone, and a smooth
// cubic-Hermite interpolation in between, following the usual
// spotlight-falloff shape used by production renderers (pbrt, Mitsuba).
func spotFalloff(cosTheta, beamWidthCos, cutoffAngleCos float32) float32 {
	if cosTheta >= beamWidthCos {
		return 1
	}
	if cosTheta <= cutoffAngleCos {
		return 0
	}
	delta := (cosTheta - cutoffAngleCos) / (beamWidthCos - cutoffAngleCos)
	return delta * delta * (3 - 2*delta)
}

func (e *Emitter) sampleDirectional() Sample {
	wi := e.Direction.Neg()
	return Sample{Wi: wi, Distance: maxFloat32, Value: e.Radiance, Delta: true, Valid: true}
}

// sampleSun treats the sun as a delta emitter: wi is always -Direction and
// CosCutoffAngle is not consulted, here or by any caller. u,v only pick the
// disc-texture lookup point; the disc's angular extent never changes wi.
func (e *Emitter) sampleSun(u, v float32, tex texture.Table) Sample {
	wi := e.Direction.Neg()
	discUV := xmath.Vec2{X: u, Y: v}
	color := xmath.Vec3{X: 1, Y: 1, Z: 1}
	if e.SunDiscTexture != texture.InvalidID {
		color = tex.Sample(e.SunDiscTexture, discUV)
	}
	return Sample{Wi: wi, Distance: maxFloat32, Value: e.Radiance.Mul(color), Delta: true, Valid: true}
}

// uniformSpherePdf is the constant density of xmath.SampleUniformSphere's
// draw, 1/(4π) everywhere on the sphere.
const uniformSpherePdf = 1 / (4 * float32(xmath.Pi))

func (e *Emitter) sampleConstant(u, v float32) Sample {
	wi := xmath.SampleUniformSphere(u, v)
	return Sample{Wi: wi, Distance: maxFloat32, Value: e.ConstantRadiance.Scale(1 / uniformSpherePdf), Pdf: uniformSpherePdf, Valid: true}
}

package scene

import (
	"github.com/rkvale/tracecore/pkg/emitter"
	"github.com/rkvale/tracecore/pkg/primitive"
	"github.com/rkvale/tracecore/pkg/xmath"
)

// LightCount is the number of NEE candidates: the explicit emitter table
// plus one entry per AreaLight instance, matching spec §3's "emitters: …
// plus an implicit area-light emitter wrapper per instance".
func (s *Scene) LightCount() int {
	return s.Emitters.Count() + len(s.areaLights)
}

// SelectLightUniform picks one NEE candidate uniformly over LightCount,
// per spec §4.5's "a uniform discrete choice over all emitters."
func (s *Scene) SelectLightUniform(u float32) (idx int, pdf float32) {
	n := s.LightCount()
	if n == 0 {
		return -1, 0
	}
	i := int(u * float32(n))
	if i >= n {
		i = n - 1
	}
	return i, 1 / float32(n)
}

// areaLightRadiance returns the constant-texture radiance an implicit
// area-light instance emits. Area-light instances are sampled without a
// hit uv (SampleArea reports a point, not a texture coordinate), so the
// radiance texture is read at uv (0.5,0.5) — a deliberate simplification
// appropriate for the common case of a uniformly-emissive area light.
func (s *Scene) areaLightRadiance(inst *Instance) xmath.Vec3 {
	b := s.BSDFs[inst.BSDFID]
	return s.Textures.Sample(b.Radiance, xmath.Vec2{X: 0.5, Y: 0.5})
}

// AreaLightRadianceAt returns the emitted radiance texture value for a hit
// on an AreaLight-bsdf instance, read at the same fixed uv (0.5,0.5)
// simplification areaLightRadiance uses for NEE sampling.
func (s *Scene) AreaLightRadianceAt(hit Hit) xmath.Vec3 {
	inst := &s.Instances[hit.InstanceID]
	return s.areaLightRadiance(inst)
}

// SampleLight draws one NEE sample toward light candidate idx (as returned
// by SelectLightUniform), from a world-space shading point origin.
func (s *Scene) SampleLight(origin xmath.Vec3, idx int, u1, u2, u3 float32) emitter.Sample {
	nExplicit := s.Emitters.Count()
	if idx < nExplicit {
		return s.Emitters.Emitters[idx].Sample(origin, u2, u3, s.Textures)
	}
	return s.sampleAreaLight(origin, idx-nExplicit, u1, u2, u3)
}

func (s *Scene) sampleAreaLight(origin xmath.Vec3, areaIdx int, u1, u2, u3 float32) emitter.Sample {
	if areaIdx < 0 || areaIdx >= len(s.areaLights) {
		return emitter.Sample{}
	}
	inst := &s.Instances[s.areaLights[areaIdx]]
	local := inst.Primitive.SampleArea(u1, u2, u3)
	if !local.Valid {
		return emitter.Sample{}
	}

	worldPoint := inst.ToWorld.TransformPoint(local.Point)
	worldNormal := inst.NormalToWorld.TransformVector(local.Normal).Normalize()

	toLight := worldPoint.Sub(origin)
	distance := toLight.Length()
	if distance < 1e-8 {
		return emitter.Sample{}
	}
	wi := toLight.Scale(1 / distance)
	cosLight := worldNormal.Dot(wi.Neg())
	if s.BSDFs[inst.BSDFID].TwoSided && cosLight < 0 {
		cosLight = -cosLight
	}
	if cosLight <= 0 {
		return emitter.Sample{} // single-sided: sampled the light's back face
	}

	areaPdf := local.AreaPdf
	if areaPdf <= 0 {
		return emitter.Sample{}
	}
	pdfSolidAngle := areaPdf * distance * distance / cosLight
	if pdfSolidAngle <= 0 {
		return emitter.Sample{}
	}

	radiance := s.areaLightRadiance(inst)
	value := radiance.Scale(1 / pdfSolidAngle)
	return emitter.Sample{Wi: wi, Distance: distance, Value: value, Delta: false, Pdf: pdfSolidAngle, Valid: true}
}

// AreaPdfSolidAngle converts an area-light instance hit's local SampleArea
// density into a solid-angle pdf as seen from prevOrigin, already multiplied
// by the light-selection pdf 1/LightCount() — this is
// spec §4.9's "area_pdf_for_this_emitter(hit)" used in the MIS weight when
// a BSDF-sampled ray lands directly on an area-light surface.
func (s *Scene) AreaPdfSolidAngle(prevOrigin xmath.Vec3, hit Hit) float32 {
	inst := &s.Instances[hit.InstanceID]
	if inst.AreaLightIndex < 0 {
		return 0
	}

	toPrev := prevOrigin.Sub(hit.Position)
	distance := toPrev.Length()
	if distance < 1e-8 {
		return 0
	}
	cosLight := hit.NormalGeom.Dot(toPrev.Scale(1 / distance))
	if s.BSDFs[inst.BSDFID].TwoSided && cosLight < 0 {
		cosLight = -cosLight
	}
	if cosLight <= 0 {
		return 0
	}

	areaPdf := inst.Primitive.AreaPdfAt(primitive.LocalHit{TriangleIndex: hit.TriangleIndex})
	if areaPdf <= 0 {
		return 0
	}
	pdfSolidAngle := areaPdf * distance * distance / cosLight
	n := s.LightCount()
	if n == 0 {
		return 0
	}
	return pdfSolidAngle / float32(n)
}

package integrator

import (
	"github.com/rkvale/tracecore/pkg/bsdf"
	"github.com/rkvale/tracecore/pkg/scene"
	"github.com/rkvale/tracecore/pkg/xmath"
)

// renderPath is the surface-only estimator: standard next-event estimation
// combined with bsdf sampling under the balance-heuristic MIS weight, with
// Russian-roulette termination past integrator.depth_rr.
func renderPath(s *scene.Scene, ray xmath.Ray, rng Rand) xmath.Vec3 {
	l := xmath.Vec3{}
	beta := xmath.Vec3{X: 1, Y: 1, Z: 1}
	var depth uint32
	bsdfPdfPrev := float32(0)
	specularPrev := true // a camera ray has no prior bsdf strategy to MIS against
	hideEmitters := s.Integrator.HideEmitters

	hit := s.Intersect(ray)
	for {
		if !hit.Valid {
			if !hideEmitters || depth > 0 {
				l = l.Add(beta.Mul(escapedRadiance(s, ray.Direction, bsdfPdfPrev, !specularPrev)))
			}
			break
		}

		b := s.BSDFAt(hit.BSDFID)
		shadingNormal := b.PerturbNormal(hit.NormalShade, hit.Tangent, hit.Bitangent, hit.UV, s.Textures)
		frame := xmath.FrameFromNormal(shadingNormal)
		woWorld := ray.Direction.Neg()
		woLocal := frame.ToLocal(woWorld)

		if b.Kind == bsdf.KindAreaLight {
			if !hideEmitters || depth > 0 {
				radiance := s.AreaLightRadianceAt(hit)
				emitted := b.Emission(woLocal, radiance)
				weight := float32(1)
				if !specularPrev {
					areaPdf := s.AreaPdfSolidAngle(ray.Origin, hit)
					weight = misWeightBalance(bsdfPdfPrev, areaPdf)
				}
				l = l.Add(beta.Mul(emitted).Scale(weight))
			}
			break // an area light absorbs the path
		}

		l = l.Add(beta.Mul(sampleDirectLighting(s, hit, frame, woLocal, b, rng)))

		scatter := b.Sample(woLocal, hit.UV, s.Textures, rng, hit.FrontFace)
		if !scatter.Valid {
			break
		}
		beta = capBeta(beta.Mul(scatter.Value))
		if beta.IsZero() {
			break
		}

		if depth >= s.Integrator.DepthRR {
			q := xmath.Min32(s.Integrator.PdfRR, beta.Luminance())
			if q <= 0 || rng.Get1D() > q {
				break
			}
			beta = beta.Scale(1 / q)
		}

		depth++
		if depth >= s.Integrator.DepthMax {
			break
		}

		wiWorld := frame.ToWorld(scatter.Wi)
		bsdfPdfPrev = scatter.Pdf
		// EventNull is a deterministic opacity pass-through, not a
		// pdf-sampled direction, so it's treated the same as a delta
		// scatter for MIS purposes.
		specularPrev = scatter.Event == bsdf.EventNull || b.IsDelta(hit.UV, s.Textures)
		ray = xmath.NewRay(hit.Position, wiWorld)
		hit = s.Intersect(ray)
	}
	return l
}

// sampleDirectLighting draws one NEE sample against the scene's unified
// light list (explicit emitters plus implicit area-light instances) and
// returns its MIS-weighted contribution, already divided by the
// light-selection pdf (rec.Value is only pre-divided by the emitter's own
// pdf, per emitter.Sample's contract — the selection pdf 1/n_lights still
// needs dividing out here).
func sampleDirectLighting(s *scene.Scene, hit scene.Hit, frame xmath.Frame, woLocal xmath.Vec3, b bsdf.BSDF, rng Rand) xmath.Vec3 {
	n := s.LightCount()
	if n == 0 {
		return xmath.Vec3{}
	}
	idx, selPdf := s.SelectLightUniform(rng.Get1D())
	if idx < 0 || selPdf <= 0 {
		return xmath.Vec3{}
	}
	u1, u2 := rng.Get2D()
	u3 := rng.Get1D()
	rec := s.SampleLight(hit.Position, idx, u1, u2, u3)
	if !rec.Valid {
		return xmath.Vec3{}
	}

	wiLocal := frame.ToLocal(rec.Wi)
	if wiLocal.Z <= 0 {
		return xmath.Vec3{}
	}

	shadowRay := xmath.NewRay(hit.Position, rec.Wi)
	if rec.Distance < xmath.MaxFloat32 {
		shadowRay.TMax = rec.Distance - shadowEpsilon
	}
	if shadowRay.TMax <= shadowRay.TMin {
		return xmath.Vec3{}
	}
	if s.IntersectAny(shadowRay, rng) {
		return xmath.Vec3{}
	}

	f := b.Eval(woLocal, wiLocal, hit.UV, s.Textures, hit.FrontFace)
	if f.IsZero() {
		return xmath.Vec3{}
	}

	weight := float32(1)
	if !rec.Delta {
		ePdf := rec.Pdf * selPdf
		if ePdf <= 0 {
			return xmath.Vec3{}
		}
		bsdfPdf := b.Pdf(woLocal, wiLocal, hit.UV, s.Textures, hit.FrontFace)
		weight = misWeightBalance(ePdf, bsdfPdf)
	}

	return f.Mul(rec.Value).Scale(weight / selPdf)
}

// escapedRadiance sums the radiance every non-delta (infinite) emitter
// contributes along a ray that left the scene, MIS-weighted against the
// previous bsdf sample's pdf when the previous scatter event wasn't
// specular (a specular bounce carries no meaningful solid-angle pdf to
// weight against, so the emitter's full radiance counts unweighted).
func escapedRadiance(s *scene.Scene, rayDir xmath.Vec3, bsdfPdfPrev float32, useMIS bool) xmath.Vec3 {
	n := s.LightCount()
	if n == 0 {
		return xmath.Vec3{}
	}
	selPdf := 1 / float32(n)

	total := xmath.Vec3{}
	for i := range s.Emitters.Emitters {
		e := &s.Emitters.Emitters[i]
		if e.IsDelta() {
			continue
		}
		radiance := e.Eval(rayDir)
		if radiance.IsZero() {
			continue
		}
		weight := float32(1)
		if useMIS {
			ePdf := e.Pdf(rayDir) * selPdf
			if ePdf > 0 {
				weight = misWeightBalance(bsdfPdfPrev, ePdf)
			}
		}
		total = total.Add(radiance.Scale(weight))
	}
	return total
}

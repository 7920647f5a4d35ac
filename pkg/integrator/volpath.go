package integrator

import (
	"math"

	"github.com/rkvale/tracecore/pkg/bsdf"
	"github.com/rkvale/tracecore/pkg/scene"
	"github.com/rkvale/tracecore/pkg/xmath"
)

// renderVolPath extends renderPath with homogeneous-medium transport: on
// every segment where the ray currently travels through a medium, a
// free-flight distance is sampled (spectral MIS over the three RGB
// extinction channels); short of the segment's end it is a scattering
// event, handled via the medium's phase function and a transmittance-
// weighted NEE; otherwise the segment's surface hit is handled exactly as
// in the surface-only estimator.
func renderVolPath(s *scene.Scene, ray xmath.Ray, rng Rand) xmath.Vec3 {
	l := xmath.Vec3{}
	beta := xmath.Vec3{X: 1, Y: 1, Z: 1}
	var depth uint32
	bsdfPdfPrev := float32(0)
	specularPrev := true
	hideEmitters := s.Integrator.HideEmitters
	curMedium := scene.InvalidMediumID

	hit := s.Intersect(ray)
	for {
		segmentT := float32(xmath.MaxFloat32)
		if hit.Valid {
			segmentT = hit.T
		}

		if curMedium != scene.InvalidMediumID {
			med := s.Media[curMedium]
			if t, pdfAvg, ok := sampleFreeFlight(med.SigmaT, segmentT, rng); ok {
				point := ray.At(t)
				tr := transmittance3(med.SigmaT, t)
				beta = capBeta(beta.Mul(tr).Mul(med.SigmaS).Scale(1 / pdfAvg))
				if beta.IsZero() {
					break
				}

				l = l.Add(beta.Mul(sampleMediumDirectLighting(s, med, point, ray.Direction, rng)))

				wi, phasePdf := samplePhase(med, ray.Direction, rng)
				if phasePdf <= 0 {
					break
				}
				bsdfPdfPrev = phasePdf
				specularPrev = false

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

				ray = xmath.NewRay(point, wi)
				hit = s.Intersect(ray)
				continue
			}

			tr := transmittance3(med.SigmaT, segmentT)
			beta = capBeta(beta.Mul(tr))
			if beta.IsZero() {
				break
			}
			if !hit.Valid {
				break // medium extends unbounded: nothing further to integrate
			}
		}

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
			break
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
		specularPrev = scatter.Event == bsdf.EventNull || b.IsDelta(hit.UV, s.Textures)

		curMedium = hit.MediumExt
		if wiWorld.Dot(hit.NormalGeom) < 0 {
			curMedium = hit.MediumInt
		}

		ray = xmath.NewRay(hit.Position, wiWorld)
		hit = s.Intersect(ray)
	}
	return l
}

// sampleFreeFlight draws a free-flight distance along one of sigmaT's three
// channels (chosen uniformly) and returns the across-channel averaged
// density at that distance — spec's "the channel is chosen uniformly and
// the pdf is averaged across channels (MIS over channels)". ok is false
// when the sampled distance falls beyond tMax (no medium interaction this
// segment) or the chosen channel has zero extinction.
func sampleFreeFlight(sigmaT xmath.Vec3, tMax float32, rng Rand) (t float32, pdfAvg float32, ok bool) {
	channel := int(rng.Get1D() * 3)
	if channel > 2 {
		channel = 2
	}
	sc := channelOf(sigmaT, channel)
	if sc <= 0 {
		return 0, 0, false
	}
	u := rng.Get1D()
	t = -logf(1-u) / sc
	if t >= tMax {
		return 0, 0, false
	}
	return t, meanChannelDensity(sigmaT, t), true
}

func channelOf(v xmath.Vec3, i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func meanChannelDensity(sigmaT xmath.Vec3, t float32) float32 {
	return (channelDensity(sigmaT.X, t) + channelDensity(sigmaT.Y, t) + channelDensity(sigmaT.Z, t)) / 3
}

func channelDensity(sigma, t float32) float32 {
	if sigma <= 0 {
		return 0
	}
	return sigma * expNeg(sigma*t)
}

// transmittance3 is exp(-sigmaT*t) component-wise.
func transmittance3(sigmaT xmath.Vec3, t float32) xmath.Vec3 {
	return xmath.Vec3{X: expNeg(sigmaT.X * t), Y: expNeg(sigmaT.Y * t), Z: expNeg(sigmaT.Z * t)}
}

func expNeg(x float32) float32 { return float32(math.Exp(float64(-x))) }
func logf(x float32) float32   { return float32(math.Log(float64(x))) }

// sampleMediumDirectLighting is sampleDirectLighting's medium-interaction
// counterpart: the "f" term is the phase function value (already a valid
// pdf, since Isotropic/HenyeyGreenstein need no separate cosine-weighted
// BRDF-style eval) and the shadow ray's occlusion test is augmented with
// the current medium's own transmittance over the shadow segment, per
// spec's "NEE against all emitters with transmittance exp(-σ_t·d)".
func sampleMediumDirectLighting(s *scene.Scene, med scene.Medium, point, rayDir xmath.Vec3, rng Rand) xmath.Vec3 {
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
	rec := s.SampleLight(point, idx, u1, u2, u3)
	if !rec.Valid {
		return xmath.Vec3{}
	}

	shadowRay := xmath.NewRay(point, rec.Wi)
	if rec.Distance < xmath.MaxFloat32 {
		shadowRay.TMax = rec.Distance - shadowEpsilon
	}
	if shadowRay.TMax <= shadowRay.TMin {
		return xmath.Vec3{}
	}
	if s.IntersectAny(shadowRay, rng) {
		return xmath.Vec3{}
	}

	transmittance := transmittance3(med.SigmaT, shadowRay.TMax)
	cosTheta := rayDir.Neg().Dot(rec.Wi)
	phaseVal := med.PhasePdf(cosTheta)
	if phaseVal <= 0 {
		return xmath.Vec3{}
	}

	weight := float32(1)
	if !rec.Delta {
		ePdf := rec.Pdf * selPdf
		if ePdf <= 0 {
			return xmath.Vec3{}
		}
		weight = misWeightBalance(ePdf, phaseVal)
	}

	return rec.Value.Mul(transmittance).Scale(phaseVal * weight / selPdf)
}

// samplePhase draws a new travel direction from the medium's phase
// function, given the direction the ray currently travels along.
func samplePhase(med scene.Medium, incomingDir xmath.Vec3, rng Rand) (xmath.Vec3, float32) {
	wo := incomingDir.Neg()
	if med.Phase == scene.PhaseHenyeyGreenstein {
		u1, u2 := rng.Get2D()
		cosTheta := scene.SampleHG(med.G, u1)
		sinTheta := sqrtf(xmath.Max32(0, 1-cosTheta*cosTheta))
		phi := u2 * 2 * float32(math.Pi)
		local := xmath.Vec3{X: sinTheta * cosf(phi), Y: sinTheta * sinf(phi), Z: cosTheta}
		frame := xmath.FrameFromNormal(wo)
		return frame.ToWorld(local), med.PhasePdf(cosTheta)
	}
	u1, u2 := rng.Get2D()
	wi := xmath.SampleUniformSphere(u1, u2)
	return wi, 1 / (4 * float32(math.Pi))
}

func sqrtf(x float32) float32 { return float32(math.Sqrt(float64(x))) }
func cosf(x float32) float32  { return float32(math.Cos(float64(x))) }
func sinf(x float32) float32  { return float32(math.Sin(float64(x))) }

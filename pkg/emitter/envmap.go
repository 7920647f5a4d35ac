package emitter

import (
	"math"

	"github.com/rkvale/tracecore/pkg/xmath"
)

// EnvMap is an importance-sampled latitude-longitude environment map. Build
// walks every pixel once to form per-row CDFs weighted by sin(theta) (solid
// angle compression near the poles) and a marginal CDF over rows.
type EnvMap struct {
	Pixels []float32 // row-major RGB, Width*Height*3
	Width  int
	Height int
	ToWorld xmath.Mat4
	// ToLocal is the inverse of ToWorld, used by Eval/Pdf to map a world
	// direction back into the map's own spherical parameterization.
	ToLocal xmath.Mat4

	rowCDFs    [][]float32 // per-row, length Width+1, normalized 0..1
	marginal   []float32   // length Height+1, normalized 0..1
	rowWeights []float32   // per-row integral, unnormalized, length Height
	avgWeight  float32
}

// NewEnvMap builds the importance-sampling CDFs from a decoded equirectangular
// bitmap, per spec §4.5: "for each row y compute per-pixel luminance weighted
// by sin θ = sin(π(y+0.5)/H), form row prefix sum → per-row CDF; form
// marginal CDF from row sums."
func NewEnvMap(pixels []float32, width, height int, toWorld xmath.Mat4) *EnvMap {
	env := &EnvMap{
		Pixels:  pixels,
		Width:   width,
		Height:  height,
		ToWorld: toWorld,
		ToLocal: toWorld.Inverse(),
	}
	env.build()
	return env
}

func (e *EnvMap) build() {
	e.rowCDFs = make([][]float32, e.Height)
	e.rowWeights = make([]float32, e.Height)
	e.marginal = make([]float32, e.Height+1)

	var total float32
	for y := 0; y < e.Height; y++ {
		sinTheta := float32(math.Sin(math.Pi * (float64(y) + 0.5) / float64(e.Height)))
		row := make([]float32, e.Width+1)
		var sum float32
		for x := 0; x < e.Width; x++ {
			lum := e.pixelAt(x, y).Luminance() * sinTheta
			sum += lum
			row[x+1] = sum
		}
		if sum > 0 {
			for x := range row {
				row[x] /= sum
			}
		}
		e.rowCDFs[y] = row
		e.rowWeights[y] = sum
		total += sum
		e.marginal[y+1] = total
	}
	if total > 0 {
		for y := range e.marginal {
			e.marginal[y] /= total
		}
		e.avgWeight = total / float32(e.Width*e.Height)
	}
}

func (e *EnvMap) pixelAt(x, y int) xmath.Vec3 {
	i := (y*e.Width + x) * 3
	return xmath.Vec3{X: e.Pixels[i], Y: e.Pixels[i+1], Z: e.Pixels[i+2]}
}

func findInterval(cdf []float32, u float32) int {
	lo, hi := 0, len(cdf)-2
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if cdf[mid] <= u {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// sampleEnvMap inverse-CDF samples a (row, column), maps to spherical
// coordinates, and transforms the result by to_world.
func (e *Emitter) sampleEnvMap(u, v float32) Sample {
	env := e.Env
	if env == nil || len(env.marginal) == 0 || env.avgWeight <= 0 {
		return Sample{}
	}
	y := findInterval(env.marginal, u)
	dy := env.marginal[y+1] - env.marginal[y]
	rowU := u
	if dy > 0 {
		rowU = (u - env.marginal[y]) / dy
	}

	row := env.rowCDFs[y]
	x := findInterval(row, v)
	dx := row[x+1] - row[x]
	colV := v
	if dx > 0 {
		colV = (v - row[x]) / dx
	}

	theta := math.Pi * (float64(y) + float64(rowU)) / float64(env.Height)
	phi := 2 * math.Pi * (float64(x) + float64(colV)) / float64(env.Width)
	sinTheta := float32(math.Sin(theta))
	cosTheta := float32(math.Cos(theta))
	sinPhi, cosPhi := float32(math.Sin(phi)), float32(math.Cos(phi))

	localDir := xmath.Vec3{X: sinTheta * cosPhi, Y: cosTheta, Z: sinTheta * sinPhi}
	worldDir := env.ToWorld.TransformVector(localDir).Normalize()

	pdf := e.pdfEnvMap(worldDir)
	if pdf <= 0 {
		return Sample{}
	}
	radiance := env.pixelAt(clampInt(x, 0, env.Width-1), clampInt(y, 0, env.Height-1))
	return Sample{Wi: worldDir, Distance: maxFloat32, Value: radiance.Scale(1 / pdf), Pdf: pdf, Valid: true}
}

func (e *Emitter) evalEnvMap(wi xmath.Vec3) xmath.Vec3 {
	env := e.Env
	if env == nil {
		return xmath.Vec3{}
	}
	local := env.ToLocal.TransformVector(wi).Normalize()
	theta := math.Acos(float64(xmath.Clamp32(local.Y, -1, 1)))
	phi := math.Atan2(float64(local.Z), float64(local.X))
	if phi < 0 {
		phi += 2 * math.Pi
	}
	x := clampInt(int(phi/(2*math.Pi)*float64(env.Width)), 0, env.Width-1)
	y := clampInt(int(theta/math.Pi*float64(env.Height)), 0, env.Height-1)
	return env.pixelAt(x, y)
}

// pdfEnvMap converts the stored pixel-space density to a solid-angle density:
// pdf = p(u,v) / (2π² sin θ), per spec §4.5.
func (e *Emitter) pdfEnvMap(wi xmath.Vec3) float32 {
	env := e.Env
	if env == nil || env.avgWeight <= 0 {
		return 0
	}
	local := env.ToLocal.TransformVector(wi).Normalize()
	theta := math.Acos(float64(xmath.Clamp32(local.Y, -1, 1)))
	phi := math.Atan2(float64(local.Z), float64(local.X))
	if phi < 0 {
		phi += 2 * math.Pi
	}
	sinTheta := math.Sin(theta)
	if sinTheta <= 0 {
		return 0
	}
	x := clampInt(int(phi/(2*math.Pi)*float64(env.Width)), 0, env.Width-1)
	y := clampInt(int(theta/math.Pi*float64(env.Height)), 0, env.Height-1)
	lum := env.pixelAt(x, y).Luminance() * float32(sinTheta)
	pUV := lum / env.avgWeight
	return pUV / (2 * float32(math.Pi) * float32(math.Pi) * float32(sinTheta))
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

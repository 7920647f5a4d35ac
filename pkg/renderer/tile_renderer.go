package renderer

import (
	"github.com/rkvale/tracecore/pkg/integrator"
	"github.com/rkvale/tracecore/pkg/scene"
	"github.com/rkvale/tracecore/pkg/xrand"
)

// renderTile walks every pixel in t, sums cam.SPP integrator estimates per
// pixel, divides, and writes linear RGB into buf (width*height*3, row-major,
// top-left origin). Each tile owns a disjoint pixel range, so concurrent
// calls on different tiles never write the same buf slot — no locking, per
// spec's "output buffer is partitioned so each pixel is written by exactly
// one thread."
func renderTile(s *scene.Scene, t Tile, frameSalt uint64, buf []float32) (samples int64, failures uint64) {
	cam := s.Camera
	for py := t.MinY; py < t.MaxY; py++ {
		for px := t.MinX; px < t.MaxX; px++ {
			rng := xrand.NewStream(px, py, frameSalt)

			var stats integrator.Stats
			var sum [3]float32
			for i := 0; i < cam.SPP; i++ {
				jx, jy := rng.Get2D()
				ray := cam.Ray(px, py, jx, jy)
				l := integrator.Render(s, ray, rng, &stats)
				sum[0] += l.X
				sum[1] += l.Y
				sum[2] += l.Z
			}

			inv := 1 / float32(cam.SPP)
			idx := (py*cam.Width + px) * 3
			buf[idx+0] = sum[0] * inv
			buf[idx+1] = sum[1] * inv
			buf[idx+2] = sum[2] * inv

			samples += int64(cam.SPP)
			failures += stats.NumericFailures
		}
	}
	return samples, failures
}

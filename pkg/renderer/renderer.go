// Package renderer partitions a built Scene's frame into tiles, dispatches
// them to a fixed worker pool via an atomic tile-dispenser, and accumulates
// each pixel's fixed-spp integrator samples into a flat linear-RGB buffer.
// No adaptive sampling, no image encoding: the output is the raw buffer
// spec §6 specifies, left to the caller (cmd/tracecore) to do anything with.
package renderer

import (
	"github.com/rkvale/tracecore/internal/rlog"
	"github.com/rkvale/tracecore/pkg/scene"
)

// Config controls a single render pass. Workers defaults to the number of
// hardware threads when <= 0, per spec's "default = number of hardware
// threads." FrameSalt seeds every pixel's RNG stream together with the
// pixel's coordinates; the same Scene and FrameSalt always reproduce the
// same buffer bit-for-bit.
type Config struct {
	Workers   int
	FrameSalt uint64

	// Cancel, if non-nil, is polled by every worker at tile boundaries.
	// In-flight tiles always finish; only the *next* tile fetch is skipped
	// once it reports true, per spec's cooperative cancellation model.
	Cancel func() bool
}

// Render drives a full-frame render of s and returns the linear RGB buffer
// (width*height*3, row-major, top-left origin) together with the counters
// the render accumulated (total samples taken, numeric failures, tiles
// completed vs cancelled).
func Render(s *scene.Scene, cfg Config, log rlog.Logger) ([]float32, RenderStats) {
	if log == nil {
		log = rlog.Discard()
	}

	width, height := s.Camera.Width, s.Camera.Height
	buf := make([]float32, width*height*3)

	tiles := tilesFor(width, height)
	d := newDispenser(tiles)
	stats := &liveStats{}

	log.Infof("render start: %dx%d, spp=%d, %d tiles, workers=%d", width, height, s.Camera.SPP, len(tiles), cfg.Workers)
	runWorkers(s, d, cfg.FrameSalt, buf, cfg.Workers, cfg.Cancel, stats)

	snap := stats.snapshot(width*height, len(tiles))
	if snap.TilesCancelled > 0 {
		log.Warningf("render cancelled: %d/%d tiles completed", snap.TilesCompleted, len(tiles))
	} else {
		log.Infof("render done: %d samples, %d numeric failures", snap.TotalSamples, snap.NumericFailures)
	}
	return buf, snap
}

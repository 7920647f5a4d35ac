package renderer

import "sync/atomic"

// RenderStats summarizes a completed render: how many pixels and samples
// were produced, and how many of the integrator's per-sample radiance
// estimates were discarded as numeric failures (NaN/Inf), per spec's
// render-time anomaly policy (a counter, never fatal).
type RenderStats struct {
	TotalPixels     int
	TotalSamples    int64
	NumericFailures uint64
	TilesCompleted  int
	TilesCancelled  int
}

// liveStats is the shared, concurrently-written accumulator every worker
// reports into as tiles complete; RenderStats above is its read-only
// snapshot returned to the caller once the render finishes.
type liveStats struct {
	totalSamples    int64
	numericFailures uint64
	tilesCompleted  int64
}

func (ls *liveStats) addSamples(n int64)   { atomic.AddInt64(&ls.totalSamples, n) }
func (ls *liveStats) addFailures(n uint64) { atomic.AddUint64(&ls.numericFailures, n) }
func (ls *liveStats) tileDone()            { atomic.AddInt64(&ls.tilesCompleted, 1) }

func (ls *liveStats) snapshot(totalPixels, totalTiles int) RenderStats {
	completed := int(atomic.LoadInt64(&ls.tilesCompleted))
	return RenderStats{
		TotalPixels:     totalPixels,
		TotalSamples:    atomic.LoadInt64(&ls.totalSamples),
		NumericFailures: atomic.LoadUint64(&ls.numericFailures),
		TilesCompleted:  completed,
		TilesCancelled:  totalTiles - completed,
	}
}

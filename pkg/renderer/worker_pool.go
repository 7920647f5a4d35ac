package renderer

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/rkvale/tracecore/pkg/scene"
)

// dispenser hands out tiles to workers via an atomic fetch-add over a
// monotonic counter, per spec's "no other synchronization is required on
// the hot path" — replacing a channel-based task queue with a single shared
// index every worker advances independently.
type dispenser struct {
	tiles []Tile
	next  atomic.Int64
}

func newDispenser(tiles []Tile) *dispenser {
	return &dispenser{tiles: tiles}
}

// take returns the next tile and true, or a zero Tile and false once every
// tile has been claimed.
func (d *dispenser) take() (Tile, bool) {
	i := d.next.Add(1) - 1
	if i >= int64(len(d.tiles)) {
		return Tile{}, false
	}
	return d.tiles[i], true
}

// runWorkers starts numWorkers goroutines, each pulling tiles from d until
// it is empty or cancelled observes true at a tile boundary, and blocks
// until they all finish.
func runWorkers(s *scene.Scene, d *dispenser, frameSalt uint64, buf []float32, numWorkers int, cancelled func() bool, stats *liveStats) {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for {
				if cancelled != nil && cancelled() {
					return
				}
				tile, ok := d.take()
				if !ok {
					return
				}
				samples, failures := renderTile(s, tile, frameSalt, buf)
				stats.addSamples(samples)
				stats.addFailures(failures)
				stats.tileDone()
			}
		}()
	}
	wg.Wait()
}

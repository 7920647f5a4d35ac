// Package xrand provides the per-pixel deterministic random stream consumed
// by the integrators. Cross-pixel independence comes from seeding each
// pixel's generator from its (x, y, frameSalt) triple; within a pixel,
// successive Float32 calls walk one continuous PCG64 stream.
package xrand

import "math/rand/v2"

// Stream wraps a math/rand/v2 PCG source (the stdlib's implementation of the
// named algorithm from the RNG contract) behind the Sampler-shaped API the
// rest of the core consumes.
type Stream struct {
	rng *rand.Rand
}

// NewStream seeds a deterministic stream for pixel (x, y) in a render
// identified by frameSalt (e.g. a per-render or per-checkpoint nonce).
// Same inputs always produce the same stream, which is what gives the
// renderer its bitwise-reproducibility guarantee (spec §8, property 7).
func NewStream(x, y int, frameSalt uint64) *Stream {
	seed1 := mix64(uint64(x)*0x9E3779B97F4A7C15 ^ uint64(y)*0xBF58476D1CE4E5B9 ^ frameSalt)
	seed2 := mix64(frameSalt ^ uint64(y)*0x94D049BB133111EB ^ uint64(x))
	return &Stream{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// mix64 is splitmix64's finalizer, used only to decorrelate the seed bits
// fed to NewPCG; it is not itself the RNG used on the sampling hot path.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return x
}

// Float32 returns the next value in [0, 1) from this pixel's stream.
func (s *Stream) Float32() float32 {
	return s.rng.Float32()
}

// Get1D is an alias of Float32 matching the BSDF/emitter sample call sites'
// (u float32) parameter naming.
func (s *Stream) Get1D() float32 { return s.Float32() }

// Get2D returns a pair of independent stream draws, used for 2D warps
// (cosine hemisphere, GGX VNDF, envmap CDF inversion, pixel jitter).
func (s *Stream) Get2D() (float32, float32) {
	return s.Float32(), s.Float32()
}

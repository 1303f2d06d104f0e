package simulate

import "math/rand/v2"

// Source hands out independent random streams. Streams with different
// ids must not overlap; a stream with a given id must always produce the
// same sequence for the same source.
type Source interface {
	// Stream returns a fresh generator for stream id.
	Stream(id uint64) *rand.Rand

	// Seed identifies the source so a run can be replayed.
	Seed() uint64
}

// pcgSource derives one PCG generator per stream from a single seed.
type pcgSource struct {
	seed uint64
}

// NewSeededSource returns a deterministic Source. Two simulations with
// the same seed, parameters and block size produce bit-identical paths.
func NewSeededSource(seed uint64) Source {
	return pcgSource{seed: seed}
}

// NewEntropySource returns a Source seeded from the runtime's entropy.
// The chosen seed is reported by Seed and is never 0, the value callers
// reserve for "seed from entropy".
func NewEntropySource() Source {
	return pcgSource{seed: nonZeroSeed(rand.Uint64)}
}

func nonZeroSeed(draw func() uint64) uint64 {
	for {
		if s := draw(); s != 0 {
			return s
		}
	}
}

func (s pcgSource) Stream(id uint64) *rand.Rand {
	// the stream id is mixed into the second PCG word so neighbouring ids
	// start far apart in state space
	return rand.New(rand.NewPCG(s.seed, splitmix64(id)))
}

func (s pcgSource) Seed() uint64 {
	return s.seed
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

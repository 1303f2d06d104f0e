// Package simulate generates Geometric Brownian Motion price paths
//
//	S[t] = S[t-1] * exp((r - sigma^2/2)dt + sigma*sqrt(dt)*Z),  Z ~ N(0,1)
//
// Paths are split into fixed-size blocks. Each block draws from its own
// stream of the Source, keyed by block index, and advances its paths
// step by step in temporal order. Blocks run on a bounded worker pool and
// write disjoint columns, so the output depends on the seed and the block
// size but not on the number of workers.
package simulate

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/contactkeval/option-mc/internal/logger"
	"github.com/contactkeval/option-mc/internal/pricing"
)

// DefaultBlockSize is the number of paths sharing one random stream.
const DefaultBlockSize = 4096

// Simulator produces GBM paths for a MarketParameters value.
type Simulator struct {
	src       Source
	workers   int
	blockSize int
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithWorkers bounds the number of blocks simulated concurrently.
// n <= 0 means runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(s *Simulator) { s.workers = n }
}

// WithBlockSize sets the number of paths per random stream. Changing it
// changes the numbers drawn for a given seed. n <= 0 keeps the default.
func WithBlockSize(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.blockSize = n
		}
	}
}

// New returns a Simulator drawing from src. A nil src means
// NewEntropySource().
func New(src Source, opts ...Option) *Simulator {
	if src == nil {
		src = NewEntropySource()
	}
	s := &Simulator{src: src, blockSize: DefaultBlockSize}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers <= 0 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	return s
}

// Seed returns the seed of the underlying Source.
func (s *Simulator) Seed() uint64 {
	return s.src.Seed()
}

// Simulate returns the full (M+1) x I path matrix.
//
// Memory is 8*(M+1)*I bytes; use SimulateTerminal when only the terminal
// prices are needed. Prices overflow to +Inf when sigma*sqrt(T) is large
// enough for exp to overflow; they are not clamped.
func (s *Simulator) Simulate(ctx context.Context, p pricing.MarketParameters) (*PathSet, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	cols := p.I
	data := make([]float64, (p.M+1)*cols)
	for i := 0; i < cols; i++ {
		data[i] = p.S0
	}

	err := s.run(ctx, p, func(ctx context.Context, lo, hi int, step stepFunc) error {
		for t := 1; t <= p.M; t++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			prev := data[(t-1)*cols+lo : (t-1)*cols+hi]
			cur := data[t*cols+lo : t*cols+hi]
			for j := range cur {
				cur[j] = step(prev[j])
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &PathSet{prices: mat.NewDense(p.M+1, cols, data)}, nil
}

// SimulateTerminal returns only the prices at step M, using O(I) memory.
// For the same Source and block size the result equals
// Simulate(ctx, p).Terminal().
func (s *Simulator) SimulateTerminal(ctx context.Context, p pricing.MarketParameters) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	terminal := make([]float64, p.I)
	for i := range terminal {
		terminal[i] = p.S0
	}

	err := s.run(ctx, p, func(ctx context.Context, lo, hi int, step stepFunc) error {
		cur := terminal[lo:hi]
		for t := 1; t <= p.M; t++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			for j := range cur {
				cur[j] = step(cur[j])
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return terminal, nil
}

// stepFunc advances one price by one time step with a fresh draw.
type stepFunc func(prev float64) float64

// blockFunc simulates paths [lo, hi) using step and stops early when
// ctx is done.
type blockFunc func(ctx context.Context, lo, hi int, step stepFunc) error

func (s *Simulator) run(ctx context.Context, p pricing.MarketParameters, block blockFunc) error {
	dt := p.Dt()
	drift := (p.R - 0.5*p.Sigma*p.Sigma) * dt
	vol := p.Sigma * math.Sqrt(dt)

	nBlocks := (p.I + s.blockSize - 1) / s.blockSize
	logger.Debugf("simulating %d paths x %d steps: %d blocks on %d workers",
		p.I, p.M, nBlocks, min(s.workers, nBlocks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for b := 0; b < nBlocks; b++ {
		lo := b * s.blockSize
		hi := min(lo+s.blockSize, p.I)
		rng := s.src.Stream(uint64(b))

		g.Go(func() error {
			logger.Tracef("block %d: paths [%d, %d)", b, lo, hi)
			return block(ctx, lo, hi, gbmStep(rng, drift, vol))
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("simulate paths: %w", err)
	}
	return nil
}

func gbmStep(rng *rand.Rand, drift, vol float64) stepFunc {
	return func(prev float64) float64 {
		return prev * math.Exp(drift+vol*rng.NormFloat64())
	}
}

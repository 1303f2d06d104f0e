package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/contactkeval/option-mc/internal/logger"
	"github.com/contactkeval/option-mc/internal/pricing"
	"github.com/contactkeval/option-mc/internal/simulate"
)

// Options control how a run simulates; they never change what is priced.
type Options struct {
	Seed      uint64 `json:"seed,omitempty"`       // 0 = seed from entropy
	Workers   int    `json:"workers,omitempty"`    // 0 = GOMAXPROCS
	BlockSize int    `json:"block_size,omitempty"` // paths per random stream, 0 = default
	KeepPaths bool   `json:"keep_paths,omitempty"` // keep the full (M+1) x I matrix for rendering
}

type Engine struct {
	opts Options
}

// Result of one pricing run
type Result struct {
	RunID   string                   `json:"run_id"`
	Params  pricing.MarketParameters `json:"params"`
	Seed    uint64                   `json:"seed"`
	Pricing pricing.PricingResult    `json:"pricing"`
	Elapsed time.Duration            `json:"elapsed"`

	Terminal []float64         `json:"-"` // prices at step M, one per path
	Paths    *simulate.PathSet `json:"-"` // nil unless Options.KeepPaths
}

func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Run validates p, simulates the paths and prices the call.
//
// Every parameter problem is reported as pricing.ErrInvalidParameter
// before any path is simulated; no partial result is returned.
func (e *Engine) Run(ctx context.Context, p pricing.MarketParameters) (*Result, error) {
	if err := pricing.CheckRunnable(p); err != nil {
		return nil, err
	}

	start := time.Now()
	res := &Result{RunID: uuid.NewString(), Params: p}

	sim := simulate.New(e.source(),
		simulate.WithWorkers(e.opts.Workers),
		simulate.WithBlockSize(e.opts.BlockSize),
	)
	res.Seed = sim.Seed()

	log := logger.WithFields(logger.Fields{"run_id": res.RunID, "seed": res.Seed})
	log.Infof("simulating %d paths over %d steps", p.I, p.M)

	if e.opts.KeepPaths {
		paths, err := sim.Simulate(ctx, p)
		if err != nil {
			return nil, err
		}
		res.Paths = paths
		res.Terminal = paths.Terminal()
	} else {
		terminal, err := sim.SimulateTerminal(ctx, p)
		if err != nil {
			return nil, err
		}
		res.Terminal = terminal
	}

	priced, err := pricing.Price(p, res.Terminal)
	if err != nil {
		return nil, err
	}
	res.Pricing = priced
	res.Elapsed = time.Since(start)

	log.Infof("mc=%.4f bs=%.4f se=%.6f in %v",
		priced.MonteCarloPrice, priced.BlackScholesPrice, priced.StandardError, res.Elapsed)
	return res, nil
}

func (e *Engine) source() simulate.Source {
	if e.opts.Seed == 0 {
		return simulate.NewEntropySource()
	}
	return simulate.NewSeededSource(e.opts.Seed)
}

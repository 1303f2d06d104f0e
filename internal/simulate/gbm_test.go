package simulate

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/contactkeval/option-mc/internal/pricing"
)

func smallParams() pricing.MarketParameters {
	return pricing.MarketParameters{S0: 100, K: 105, R: 0.05, Sigma: 0.2, T: 1, M: 50, I: 3000}
}

func TestSimulate_Shape(t *testing.T) {
	p := smallParams()
	ps, err := New(NewSeededSource(7)).Simulate(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ps.Steps() != p.M || ps.Paths() != p.I {
		t.Fatalf("shape = (%d+1, %d), want (%d+1, %d)", ps.Steps(), ps.Paths(), p.M, p.I)
	}
	r, c := ps.Matrix().Dims()
	if r != p.M+1 || c != p.I {
		t.Fatalf("matrix dims = (%d, %d)", r, c)
	}
	for i := 0; i < p.I; i++ {
		if ps.At(0, i) != p.S0 {
			t.Fatalf("row 0 path %d = %v, want %v", i, ps.At(0, i), p.S0)
		}
	}
	for tt := 1; tt <= p.M; tt++ {
		for i := 0; i < p.I; i += 97 {
			if v := ps.At(tt, i); !(v > 0) || math.IsInf(v, 0) {
				t.Fatalf("price at (%d, %d) = %v", tt, i, v)
			}
		}
	}
}

func TestSimulate_Reproducible(t *testing.T) {
	p := smallParams()
	ctx := context.Background()

	a, err := New(NewSeededSource(42)).Simulate(ctx, p)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := New(NewSeededSource(42)).Simulate(ctx, p)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("same seed produced different paths")
	}

	c, err := New(NewSeededSource(43)).Simulate(ctx, p)
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if a.Equal(c) {
		t.Fatalf("different seeds produced identical paths")
	}
}

func TestSimulate_IndependentOfWorkerCount(t *testing.T) {
	p := smallParams()
	ctx := context.Background()

	serial, err := New(NewSeededSource(11), WithWorkers(1), WithBlockSize(256)).Simulate(ctx, p)
	if err != nil {
		t.Fatalf("serial: %v", err)
	}
	parallel, err := New(NewSeededSource(11), WithWorkers(8), WithBlockSize(256)).Simulate(ctx, p)
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	if !serial.Equal(parallel) {
		t.Fatalf("worker count changed the simulated paths")
	}
}

func TestSimulateTerminal_MatchesFullPaths(t *testing.T) {
	p := smallParams()
	ctx := context.Background()

	full, err := New(NewSeededSource(5), WithBlockSize(500)).Simulate(ctx, p)
	if err != nil {
		t.Fatalf("full: %v", err)
	}
	terminal, err := New(NewSeededSource(5), WithBlockSize(500)).SimulateTerminal(ctx, p)
	if err != nil {
		t.Fatalf("terminal: %v", err)
	}

	want := full.Terminal()
	if len(terminal) != len(want) {
		t.Fatalf("len = %d, want %d", len(terminal), len(want))
	}
	for i := range want {
		if terminal[i] != want[i] {
			t.Fatalf("terminal[%d] = %v, want %v", i, terminal[i], want[i])
		}
	}
}

func TestSimulate_ZeroVolatilityIsDeterministicGrowth(t *testing.T) {
	p := pricing.MarketParameters{S0: 100, K: 100, R: 0.05, Sigma: 0, T: 2, M: 20, I: 5}

	ps, err := New(NewSeededSource(1)).Simulate(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dt := p.Dt()
	for tt := 0; tt <= p.M; tt++ {
		want := p.S0 * math.Exp(p.R*dt*float64(tt))
		for i := 0; i < p.I; i++ {
			if got := ps.At(tt, i); math.Abs(got-want) > 1e-9 {
				t.Fatalf("At(%d, %d) = %v, want %v", tt, i, got, want)
			}
		}
	}

	path := ps.Path(3)
	if len(path) != p.M+1 || path[0] != p.S0 {
		t.Fatalf("Path(3) = %v", path)
	}
}

func TestSimulateTerminal_RiskNeutralMean(t *testing.T) {
	// E[S_T] = S0 * exp(rT); sd(S_T)/sqrt(I) bounds the sampling error.
	p := pricing.MarketParameters{S0: 100, K: 105, R: 0.05, Sigma: 0.2, T: 1, M: 10, I: 40000}

	terminal, err := New(NewSeededSource(2024)).SimulateTerminal(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mean, sd := stat.MeanStdDev(terminal, nil)
	want := p.S0 * math.Exp(p.R*p.T)
	if tol := 5 * sd / math.Sqrt(float64(p.I)); math.Abs(mean-want) > tol {
		t.Fatalf("mean terminal price %v, want %v +/- %v", mean, want, tol)
	}
}

func TestSimulate_InvalidParameters(t *testing.T) {
	sim := New(NewSeededSource(1))
	ctx := context.Background()

	bad := []pricing.MarketParameters{
		{S0: 100, K: 100, R: 0.05, Sigma: 0.2, T: 1, M: 0, I: 10},
		{S0: 100, K: 100, R: 0.05, Sigma: 0.2, T: 1, M: 10, I: 0},
		{S0: 100, K: 100, R: 0.05, Sigma: 0.2, T: 0, M: 10, I: 10},
		{S0: 100, K: 100, R: 0.05, Sigma: -0.2, T: 1, M: 10, I: 10},
	}
	for _, p := range bad {
		if _, err := sim.Simulate(ctx, p); !errors.Is(err, pricing.ErrInvalidParameter) {
			t.Fatalf("Simulate(%+v): expected ErrInvalidParameter, got %v", p, err)
		}
		if _, err := sim.SimulateTerminal(ctx, p); !errors.Is(err, pricing.ErrInvalidParameter) {
			t.Fatalf("SimulateTerminal(%+v): expected ErrInvalidParameter, got %v", p, err)
		}
	}
}

func TestSimulate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(NewSeededSource(1)).Simulate(ctx, smallParams())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestEntropySource_ReportsSeed(t *testing.T) {
	src := NewEntropySource()
	sim := New(src)
	if sim.Seed() != src.Seed() {
		t.Fatalf("simulator seed %d, source seed %d", sim.Seed(), src.Seed())
	}

	// replaying the reported seed reproduces the entropy run
	p := smallParams()
	a, err := sim.SimulateTerminal(context.Background(), p)
	if err != nil {
		t.Fatalf("entropy run: %v", err)
	}
	b, err := New(NewSeededSource(src.Seed())).SimulateTerminal(context.Background(), p)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("replay differs at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSource_StreamsDiffer(t *testing.T) {
	src := NewSeededSource(9)
	a, b := src.Stream(0), src.Stream(1)
	same := 0
	for i := 0; i < 16; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	if same == 16 {
		t.Fatalf("streams 0 and 1 produced the same sequence")
	}
}

func TestNonZeroSeed_Redraws(t *testing.T) {
	draws := []uint64{0, 0, 17}
	n := 0
	seed := nonZeroSeed(func() uint64 {
		v := draws[n]
		n++
		return v
	})
	if seed != 17 || n != 3 {
		t.Fatalf("nonZeroSeed = %d after %d draws, want 17 after 3", seed, n)
	}

	for range 100 {
		if NewEntropySource().Seed() == 0 {
			t.Fatalf("entropy source reported seed 0")
		}
	}
}

// Package pricing prices a European call option two ways: by reducing
// simulated terminal prices to a discounted Monte Carlo estimate with
// its standard error, and by the closed-form Black-Scholes formula used
// as the benchmark.
//
// Every function is a pure function of its inputs. Market inputs travel
// as an immutable MarketParameters value; there is no package state.
package pricing

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is wrapped by every precondition failure in this
// module. Test for it with errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")

// MarketParameters describes one pricing run.
//
// Parameters:
//   - S0: initial price of the underlying (> 0)
//   - K: strike price (> 0)
//   - R: annual risk-free rate, continuously compounded
//   - Sigma: annual volatility as a decimal (>= 0)
//   - T: time to maturity in years (> 0)
//   - M: number of time steps per path (>= 1)
//   - I: number of simulated paths (>= 1)
type MarketParameters struct {
	S0    float64 `json:"s0" yaml:"s0"`
	K     float64 `json:"k" yaml:"k"`
	R     float64 `json:"r" yaml:"r"`
	Sigma float64 `json:"sigma" yaml:"sigma"`
	T     float64 `json:"t" yaml:"t"`
	M     int     `json:"m" yaml:"m"`
	I     int     `json:"i" yaml:"i"`
}

// DefaultParameters returns the reference contract: a one year call
// struck at 105 on an underlying trading at 100.
func DefaultParameters() MarketParameters {
	return MarketParameters{
		S0:    100.0,
		K:     105.0,
		R:     0.05,
		Sigma: 0.20,
		T:     1.0,
		M:     1000,
		I:     50_000,
	}
}

// Validate checks the invariants shared by the simulator and both
// estimators. Stricter requirements (Sigma > 0 for the closed form,
// I >= 2 for the standard error) are checked by the functions that need
// them.
func (p MarketParameters) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"s0", p.S0}, {"k", p.K}, {"r", p.R}, {"sigma", p.Sigma}, {"t", p.T},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return invalidf("%s must be finite, got %v", f.name, f.v)
		}
	}

	switch {
	case p.S0 <= 0:
		return invalidf("s0 must be > 0, got %g", p.S0)
	case p.K <= 0:
		return invalidf("k must be > 0, got %g", p.K)
	case p.T <= 0:
		return invalidf("t must be > 0, got %g", p.T)
	case p.Sigma < 0:
		return invalidf("sigma must be >= 0, got %g", p.Sigma)
	case p.M < 1:
		return invalidf("m must be >= 1, got %d", p.M)
	case p.I < 1:
		return invalidf("i must be >= 1, got %d", p.I)
	}
	return nil
}

// Dt is the length of one simulation step in years.
func (p MarketParameters) Dt() float64 {
	return p.T / float64(p.M)
}

// DiscountFactor is exp(-rT).
func (p MarketParameters) DiscountFactor() float64 {
	return math.Exp(-p.R * p.T)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...)
}

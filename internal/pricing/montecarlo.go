package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ZScore95 is the two-sided 95% quantile of the standard normal
// distribution used for the confidence interval.
const ZScore95 = 1.96

// Interval is a closed range [Lower, Upper].
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Contains reports whether v lies within the interval.
func (iv Interval) Contains(v float64) bool {
	return iv.Lower <= v && v <= iv.Upper
}

// Width is Upper - Lower.
func (iv Interval) Width() float64 {
	return iv.Upper - iv.Lower
}

// Estimate is the Monte Carlo reduction of one set of terminal prices.
type Estimate struct {
	Price              float64  `json:"price"`
	StandardError      float64  `json:"standard_error"`
	ConfidenceInterval Interval `json:"confidence_interval"`
}

// CallPayoffs fills dst with max(S_T - K, 0) for every terminal price and
// returns it. dst is reallocated when it is too short.
func CallPayoffs(dst, terminal []float64, strike float64) []float64 {
	if cap(dst) < len(terminal) {
		dst = make([]float64, len(terminal))
	}
	dst = dst[:len(terminal)]
	for i, s := range terminal {
		dst[i] = math.Max(s-strike, 0)
	}
	return dst
}

// EstimateCall reduces terminal prices to a discounted price estimate.
//
// The standard error uses the unbiased (I-1) sample deviation of the
// undiscounted payoffs; the discount factor is applied once, to both the
// mean and the deviation:
//
//	price = exp(-rT) * mean(payoff)
//	se    = exp(-rT) * sd(payoff) / sqrt(I)
//	ci    = price -/+ 1.96 * se
//
// len(terminal) must equal p.I and be at least 2. exp(-rT) and the
// simulated prices themselves can overflow for extreme Sigma*sqrt(T);
// such inputs yield +Inf rather than being clamped.
func EstimateCall(p MarketParameters, terminal []float64) (Estimate, error) {
	if err := p.Validate(); err != nil {
		return Estimate{}, err
	}
	if len(terminal) != p.I {
		return Estimate{}, invalidf("got %d terminal prices for i=%d", len(terminal), p.I)
	}
	if p.I < 2 {
		return Estimate{}, invalidf("i must be >= 2 for a standard error, got %d", p.I)
	}

	payoffs := CallPayoffs(nil, terminal, p.K)
	mean, variance := stat.MeanVariance(payoffs, nil)
	// equal payoffs can leave a rounding residual just below zero
	if variance < 0 {
		variance = 0
	}

	df := p.DiscountFactor()
	price := df * mean
	se := df * math.Sqrt(variance) / math.Sqrt(float64(len(payoffs)))

	return Estimate{
		Price:         price,
		StandardError: se,
		ConfidenceInterval: Interval{
			Lower: price - ZScore95*se,
			Upper: price + ZScore95*se,
		},
	}, nil
}

package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// BlackScholesCall calculates the closed-form price of a European call
// on a non-dividend-paying underlying.
//
// Parameters (read from p):
//   - S0: spot price of the underlying
//   - K: strike price of the option
//   - T: time to expiry in years
//   - R: risk-free interest rate (annual)
//   - Sigma: volatility of the underlying (annual, as a decimal)
//
// Returns:
//
//	The theoretical call price. M and I are not used.
//
// Sigma = 0 is the deterministic-growth limit where d1 divides by zero;
// it is rejected with ErrInvalidParameter instead of returning NaN.
func BlackScholesCall(p MarketParameters) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if p.Sigma == 0 {
		return 0, invalidf("sigma must be > 0 for the closed-form price")
	}

	d1, d2 := d1d2(p)
	return p.S0*normCDF(d1) - p.K*p.DiscountFactor()*normCDF(d2), nil
}

// PercentDeviation is 100 * |mc - bs| / bs.
//
// A benchmark of zero (the closed form underflows for strikes far out of
// the money) leaves the ratio undefined and is rejected.
func PercentDeviation(mc, bs float64) (float64, error) {
	if !(bs > 0) || math.IsInf(bs, 0) {
		return 0, invalidf("benchmark price must be > 0, got %g", bs)
	}
	return 100 * math.Abs(mc-bs) / bs, nil
}

// d1d2 returns
//
//	d1 = [ln(S0/K) + (r + sigma^2/2)T] / (sigma * sqrt(T))
//	d2 = d1 - sigma * sqrt(T)
func d1d2(p MarketParameters) (d1, d2 float64) {
	volSqrtT := p.Sigma * math.Sqrt(p.T)
	d1 = (math.Log(p.S0/p.K) + (p.R+0.5*p.Sigma*p.Sigma)*p.T) / volSqrtT
	return d1, d1 - volSqrtT
}

// normCDF computes the cumulative distribution function of the standard
// normal distribution. distuv evaluates it through erfc, which keeps full
// relative precision in the lower tail where 1+erf would cancel.
func normCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

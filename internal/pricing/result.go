package pricing

// PricingResult is the outcome of one pricing run.
type PricingResult struct {
	MonteCarloPrice    float64  `json:"monte_carlo_price"`
	StandardError      float64  `json:"standard_error"`
	ConfidenceInterval Interval `json:"confidence_interval"`
	BlackScholesPrice  float64  `json:"black_scholes_price"`
	PercentDeviation   float64  `json:"percent_deviation"`
}

// Price estimates the call from terminal prices and compares it with the
// closed form. The closed-form preconditions are checked first so a
// Sigma of zero fails before any reduction work.
func Price(p MarketParameters, terminal []float64) (PricingResult, error) {
	bs, err := BlackScholesCall(p)
	if err != nil {
		return PricingResult{}, err
	}

	est, err := EstimateCall(p, terminal)
	if err != nil {
		return PricingResult{}, err
	}

	dev, err := PercentDeviation(est.Price, bs)
	if err != nil {
		return PricingResult{}, err
	}

	return PricingResult{
		MonteCarloPrice:    est.Price,
		StandardError:      est.StandardError,
		ConfidenceInterval: est.ConfidenceInterval,
		BlackScholesPrice:  bs,
		PercentDeviation:   dev,
	}, nil
}

// CheckRunnable reports whether p can go through a full run: the shared
// invariants plus the extra requirements of the standard error and the
// closed form. Callers use it to fail before simulating.
func CheckRunnable(p MarketParameters) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.I < 2 {
		return invalidf("i must be >= 2 for a standard error, got %d", p.I)
	}
	if p.Sigma == 0 {
		return invalidf("sigma must be > 0 for the closed-form price")
	}
	return nil
}

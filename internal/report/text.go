package report

import (
	"fmt"
	"io"

	"github.com/contactkeval/option-mc/internal/pricing"
)

const (
	header = "===== European Call Option Pricing ====="
	footer = "======================================="
)

// WriteText prints the fixed-format console report.
func WriteText(w io.Writer, pr pricing.PricingResult) error {
	_, err := fmt.Fprintf(w, "\n%s\n"+
		"Monte Carlo Price:       %.4f\n"+
		"Black–Scholes Price:     %.4f\n"+
		"Percent Deviation:       %.2f%%\n"+
		"Standard Error:          %.6f\n"+
		"95%% Confidence Interval: [%.4f, %.4f]\n"+
		"%s\n\n",
		header,
		pr.MonteCarloPrice,
		pr.BlackScholesPrice,
		pr.PercentDeviation,
		pr.StandardError,
		pr.ConfidenceInterval.Lower, pr.ConfidenceInterval.Upper,
		footer,
	)
	return err
}

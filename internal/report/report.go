// Package report writes the outcome of a pricing run: the console
// report, a JSON summary and the terminal prices as CSV.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/contactkeval/option-mc/internal/engine"
	"github.com/contactkeval/option-mc/internal/pricing"
)

const (
	JSONFile = "pricing.json"
	CSVFile  = "terminal_prices.csv"
)

// Summary is the JSON form of a run. Prices are rounded decimals so the
// file reads the same as the console report.
type Summary struct {
	RunID              string                   `json:"run_id"`
	Seed               uint64                   `json:"seed"`
	Params             pricing.MarketParameters `json:"params"`
	MonteCarloPrice    decimal.Decimal          `json:"monte_carlo_price"`
	StandardError      decimal.Decimal          `json:"standard_error"`
	ConfidenceLower    decimal.Decimal          `json:"confidence_lower"`
	ConfidenceUpper    decimal.Decimal          `json:"confidence_upper"`
	BlackScholesPrice  decimal.Decimal          `json:"black_scholes_price"`
	PercentDeviation   decimal.Decimal          `json:"percent_deviation"`
	ElapsedNanoseconds int64                    `json:"elapsed_ns"`
}

// TerminalRow is one line of the terminal price CSV.
type TerminalRow struct {
	Path          int     `csv:"path"`
	TerminalPrice float64 `csv:"terminal_price"`
	Payoff        float64 `csv:"payoff"`
}

// NewSummary rounds a result for publication.
func NewSummary(res *engine.Result) Summary {
	pr := res.Pricing
	return Summary{
		RunID:              res.RunID,
		Seed:               res.Seed,
		Params:             res.Params,
		MonteCarloPrice:    round(pr.MonteCarloPrice, 4),
		StandardError:      round(pr.StandardError, 6),
		ConfidenceLower:    round(pr.ConfidenceInterval.Lower, 4),
		ConfidenceUpper:    round(pr.ConfidenceInterval.Upper, 4),
		BlackScholesPrice:  round(pr.BlackScholesPrice, 4),
		PercentDeviation:   round(pr.PercentDeviation, 2),
		ElapsedNanoseconds: res.Elapsed.Nanoseconds(),
	}
}

func WriteJSON(res *engine.Result, outdir string) error {
	b, err := json.MarshalIndent(NewSummary(res), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, JSONFile), b, 0644)
}

func WriteCSV(res *engine.Result, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, CSVFile))
	if err != nil {
		return err
	}
	defer f.Close()

	payoffs := pricing.CallPayoffs(nil, res.Terminal, res.Params.K)
	rows := make([]*TerminalRow, len(res.Terminal))
	for i, s := range res.Terminal {
		rows[i] = &TerminalRow{Path: i, TerminalPrice: s, Payoff: payoffs[i]}
	}
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("write %s: %w", CSVFile, err)
	}
	return nil
}

// WriteAll creates outdir and writes the JSON summary and the CSV.
func WriteAll(res *engine.Result, outdir string) error {
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return fmt.Errorf("create report dir %s: %w", outdir, err)
	}
	if err := WriteJSON(res, outdir); err != nil {
		return fmt.Errorf("write %s: %w", JSONFile, err)
	}
	return WriteCSV(res, outdir)
}

func round(v float64, places int32) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(places)
}

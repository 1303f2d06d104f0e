package config

import (
	"github.com/contactkeval/option-mc/internal/pricing"
	"github.com/contactkeval/option-mc/internal/simulate"
)

// Default values for optional configuration fields.
const (
	DefaultReportDir     = "./out"
	DefaultPathStride    = 200
	DefaultHistogramBins = 60
	DefaultVerbosity     = 1
	DefaultServerAddr    = ":8080"
	DefaultMaxWork       = 50_000_000
)

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	p := pricing.DefaultParameters()
	return &Config{
		Market: MarketConfig{
			S0:    p.S0,
			K:     p.K,
			R:     p.R,
			Sigma: p.Sigma,
			T:     p.T,
			M:     p.M,
			I:     p.I,
		},
		Simulation: SimulationConfig{
			BlockSize: simulate.DefaultBlockSize,
		},
		Output: OutputConfig{
			ReportDir:     DefaultReportDir,
			PathStride:    DefaultPathStride,
			HistogramBins: DefaultHistogramBins,
			Verbosity:     DefaultVerbosity,
		},
		Server: ServerConfig{
			Addr:    DefaultServerAddr,
			MaxWork: DefaultMaxWork,
		},
	}
}

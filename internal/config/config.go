// Package config loads the settings of a pricing run.
//
// Values are layered: Default, then an optional YAML file (with ${VAR}
// expansion), then OPTION_MC_* environment variables. The CLI applies
// its flags last.
package config

import (
	"github.com/contactkeval/option-mc/internal/pricing"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "OPTION_MC_"

// Config is the full configuration of the CLI and the REST server.
type Config struct {
	Market     MarketConfig     `yaml:"market" envPrefix:"MARKET_"`
	Simulation SimulationConfig `yaml:"simulation" envPrefix:"SIMULATION_"`
	Output     OutputConfig     `yaml:"output" envPrefix:"OUTPUT_"`
	Server     ServerConfig     `yaml:"server" envPrefix:"SERVER_"`
}

// MarketConfig mirrors pricing.MarketParameters.
type MarketConfig struct {
	S0    float64 `yaml:"s0" env:"S0"`
	K     float64 `yaml:"k" env:"K"`
	R     float64 `yaml:"r" env:"R"`
	Sigma float64 `yaml:"sigma" env:"SIGMA"`
	T     float64 `yaml:"t" env:"T"`
	M     int     `yaml:"m" env:"M"`
	I     int     `yaml:"i" env:"I"`
}

type SimulationConfig struct {
	Seed      uint64 `yaml:"seed" env:"SEED"`             // 0 = entropy
	Workers   int    `yaml:"workers" env:"WORKERS"`       // 0 = GOMAXPROCS
	BlockSize int    `yaml:"block_size" env:"BLOCK_SIZE"` // paths per random stream
}

type OutputConfig struct {
	ReportDir     string `yaml:"report_dir" env:"REPORT_DIR"`
	Render        bool   `yaml:"render" env:"RENDER"`
	PathStride    int    `yaml:"path_stride" env:"PATH_STRIDE"`       // plot every n-th path
	HistogramBins int    `yaml:"histogram_bins" env:"HISTOGRAM_BINS"` // terminal distribution bins
	Verbosity     int    `yaml:"verbosity" env:"VERBOSITY"`           // 0=errors,1=info,2=debug,3=trace
}

type ServerConfig struct {
	Addr    string `yaml:"addr" env:"ADDR"`
	MaxWork int    `yaml:"max_work" env:"MAX_WORK"` // upper bound on m*i per request
}

// Params converts the market section.
func (c *Config) Params() pricing.MarketParameters {
	return pricing.MarketParameters{
		S0:    c.Market.S0,
		K:     c.Market.K,
		R:     c.Market.R,
		Sigma: c.Market.Sigma,
		T:     c.Market.T,
		M:     c.Market.M,
		I:     c.Market.I,
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/contactkeval/option-mc/internal/pricing"
	"github.com/contactkeval/option-mc/internal/simulate"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if got, want := cfg.Params(), pricing.DefaultParameters(); got != want {
		t.Errorf("Params() = %+v, want %+v", got, want)
	}
	if cfg.Simulation.Seed != 0 {
		t.Errorf("Simulation.Seed = %d, want 0 (entropy)", cfg.Simulation.Seed)
	}
	if cfg.Simulation.BlockSize != simulate.DefaultBlockSize {
		t.Errorf("Simulation.BlockSize = %d, want %d", cfg.Simulation.BlockSize, simulate.DefaultBlockSize)
	}
	if cfg.Output.PathStride != DefaultPathStride || cfg.Output.HistogramBins != DefaultHistogramBins {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestLoad(t *testing.T) {
	yaml := `
market:
  s0: 120
  k: 110
  sigma: 0.35
  i: 1000
simulation:
  seed: 42
  workers: 2
output:
  report_dir: /tmp/mc
  render: true
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	p := cfg.Params()
	if p.S0 != 120 || p.K != 110 || p.Sigma != 0.35 || p.I != 1000 {
		t.Errorf("market overrides not applied: %+v", p)
	}
	// keys missing from the file keep their defaults
	if p.R != 0.05 || p.T != 1.0 || p.M != 1000 {
		t.Errorf("market defaults lost: %+v", p)
	}
	if cfg.Simulation.Seed != 42 || cfg.Simulation.Workers != 2 {
		t.Errorf("Simulation = %+v", cfg.Simulation)
	}
	if cfg.Output.ReportDir != "/tmp/mc" || !cfg.Output.Render {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Output.HistogramBins != DefaultHistogramBins {
		t.Errorf("Output.HistogramBins = %d, want default %d", cfg.Output.HistogramBins, DefaultHistogramBins)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_MC_DIR", "/var/reports")

	path := writeTempFile(t, `
output:
  report_dir: ${TEST_MC_DIR}/run
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.ReportDir != "/var/reports/run" {
		t.Errorf("Output.ReportDir = %q, want %q", cfg.Output.ReportDir, "/var/reports/run")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected error for missing file")
	}
	if _, err := Load(writeTempFile(t, "market: [not, a, map")); err == nil {
		t.Errorf("expected error for malformed yaml")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(map[string]string{
		"OPTION_MC_MARKET_SIGMA":     "0.3",
		"OPTION_MC_MARKET_I":         "2500",
		"OPTION_MC_SIMULATION_SEED":  "7",
		"OPTION_MC_OUTPUT_RENDER":    "true",
		"OPTION_MC_SERVER_ADDR":      ":9999",
		"UNRELATED_MARKET_SIGMA":     "9",
		"OPTION_MC_OUTPUT_VERBOSITY": "3",
	})
	if err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.Market.Sigma != 0.3 || cfg.Market.I != 2500 {
		t.Errorf("Market = %+v", cfg.Market)
	}
	if cfg.Market.S0 != 100 {
		t.Errorf("unset variable changed Market.S0 to %v", cfg.Market.S0)
	}
	if cfg.Simulation.Seed != 7 || !cfg.Output.Render || cfg.Output.Verbosity != 3 {
		t.Errorf("Simulation = %+v Output = %+v", cfg.Simulation, cfg.Output)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestApplyEnvBadValue(t *testing.T) {
	cfg := Default()
	if err := cfg.ApplyEnv(map[string]string{"OPTION_MC_MARKET_M": "many"}); err == nil {
		t.Errorf("expected parse error")
	}
}

func TestLoadAndValidate(t *testing.T) {
	t.Setenv("OPTION_MC_MARKET_K", "99")

	cfg, err := LoadAndValidate("")
	if err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}
	if cfg.Market.K != 99 {
		t.Errorf("Market.K = %v, want 99 from env", cfg.Market.K)
	}

	t.Setenv("OPTION_MC_OUTPUT_PATH_STRIDE", "0")
	if _, err := LoadAndValidate(""); err == nil {
		t.Errorf("expected validation error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Simulation.Workers = -1 },
			wantErr: "simulation.workers must be >= 0, got -1",
		},
		{
			name:    "zero block size",
			mutate:  func(c *Config) { c.Simulation.BlockSize = 0 },
			wantErr: "simulation.block_size must be >= 1, got 0",
		},
		{
			name:    "missing report dir",
			mutate:  func(c *Config) { c.Output.ReportDir = "" },
			wantErr: "output.report_dir is required",
		},
		{
			name:    "zero bins",
			mutate:  func(c *Config) { c.Output.HistogramBins = 0 },
			wantErr: "output.histogram_bins must be >= 1, got 0",
		},
		{
			name:    "verbosity out of range",
			mutate:  func(c *Config) { c.Output.Verbosity = 4 },
			wantErr: "output.verbosity must be between 0 and 3, got 4",
		},
		{
			name:    "missing server addr",
			mutate:  func(c *Config) { c.Server.Addr = "" },
			wantErr: "server.addr is required",
		},
		{
			name:    "zero max work",
			mutate:  func(c *Config) { c.Server.MaxWork = 0 },
			wantErr: "server.max_work must be >= 1, got 0",
		},
		{
			name:   "invalid market values are left to pricing",
			mutate: func(c *Config) { c.Market.Sigma = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

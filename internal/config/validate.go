package config

import (
	"errors"
	"fmt"
)

// Validate checks the simulation, output and server sections. Market
// values are checked by pricing.MarketParameters when a run starts, so
// that they are reported as invalid parameters.
func (c *Config) Validate() error {
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation.workers must be >= 0, got %d", c.Simulation.Workers)
	}
	if c.Simulation.BlockSize < 1 {
		return fmt.Errorf("simulation.block_size must be >= 1, got %d", c.Simulation.BlockSize)
	}

	if c.Output.ReportDir == "" {
		return errors.New("output.report_dir is required")
	}
	if c.Output.PathStride < 1 {
		return fmt.Errorf("output.path_stride must be >= 1, got %d", c.Output.PathStride)
	}
	if c.Output.HistogramBins < 1 {
		return fmt.Errorf("output.histogram_bins must be >= 1, got %d", c.Output.HistogramBins)
	}
	if c.Output.Verbosity < 0 || c.Output.Verbosity > 3 {
		return fmt.Errorf("output.verbosity must be between 0 and 3, got %d", c.Output.Verbosity)
	}

	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Server.MaxWork < 1 {
		return fmt.Errorf("server.max_work must be >= 1, got %d", c.Server.MaxWork)
	}
	return nil
}

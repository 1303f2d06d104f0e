package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/contactkeval/option-mc/internal/config"
	"github.com/contactkeval/option-mc/internal/engine"
	"github.com/contactkeval/option-mc/internal/logger"
	"github.com/contactkeval/option-mc/internal/render"
	"github.com/contactkeval/option-mc/internal/report"
	"github.com/contactkeval/option-mc/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults when empty)")
	s0 := flag.Float64("s0", 0, "initial underlying price")
	k := flag.Float64("k", 0, "strike price")
	r := flag.Float64("r", 0, "continuously compounded risk-free rate")
	sigma := flag.Float64("sigma", 0, "annualized volatility")
	t := flag.Float64("t", 0, "time to maturity in years")
	m := flag.Int("m", 0, "time steps per path")
	i := flag.Int("i", 0, "number of simulated paths")
	seed := flag.Uint64("seed", 0, "random seed (0 = entropy)")
	workers := flag.Int("workers", 0, "simulation workers (0 = GOMAXPROCS)")
	reportDir := flag.String("report-dir", "", "directory for pricing.json, terminal_prices.csv and plots")
	doRender := flag.Bool("render", false, "write path and terminal distribution plots")
	verbosity := flag.Int("v", 0, "verbosity: 0=errors, 1=info, 2=debug, 3=trace")
	rest := flag.Bool("rest", false, "run as REST server (accept pricing requests)")
	port := flag.String("port", "", "REST server listen address")
	flag.Parse()

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Fatalf("loading config: %v", err)
	}

	// flags given on the command line win over file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "s0":
			cfg.Market.S0 = *s0
		case "k":
			cfg.Market.K = *k
		case "r":
			cfg.Market.R = *r
		case "sigma":
			cfg.Market.Sigma = *sigma
		case "t":
			cfg.Market.T = *t
		case "m":
			cfg.Market.M = *m
		case "i":
			cfg.Market.I = *i
		case "seed":
			cfg.Simulation.Seed = *seed
		case "workers":
			cfg.Simulation.Workers = *workers
		case "report-dir":
			cfg.Output.ReportDir = *reportDir
		case "render":
			cfg.Output.Render = *doRender
		case "v":
			cfg.Output.Verbosity = *verbosity
		case "port":
			cfg.Server.Addr = *port
		}
	})
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid flags: %v", err)
	}
	logger.SetVerbosity(cfg.Output.Verbosity)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *rest {
		srv := server.New(server.Options{
			MaxWork:   int64(cfg.Server.MaxWork),
			Workers:   cfg.Simulation.Workers,
			BlockSize: cfg.Simulation.BlockSize,
		})
		if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
			logger.Fatalf("REST server: %v", err)
		}
		return
	}

	if err := run(ctx, cfg); err != nil {
		logger.Fatalf("pricing failed: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	eng := engine.NewEngine(engine.Options{
		Seed:      cfg.Simulation.Seed,
		Workers:   cfg.Simulation.Workers,
		BlockSize: cfg.Simulation.BlockSize,
		KeepPaths: cfg.Output.Render,
	})
	res, err := eng.Run(ctx, cfg.Params())
	if err != nil {
		return err
	}

	if err := report.WriteText(os.Stdout, res.Pricing); err != nil {
		return err
	}

	// outputs below are best effort, the price is already reported
	dir := cfg.Output.ReportDir
	if err := report.WriteAll(res, dir); err != nil {
		logger.Errorf("writing reports: %v", err)
	}
	if cfg.Output.Render {
		p := res.Params
		if err := render.PathsPNG(res.Paths, p.S0, p.K, cfg.Output.PathStride, filepath.Join(dir, render.PathsFile)); err != nil {
			logger.Errorf("rendering paths: %v", err)
		}
		if err := render.TerminalHistogramPNG(res.Terminal, p.K, cfg.Output.HistogramBins, filepath.Join(dir, render.TerminalFile)); err != nil {
			logger.Errorf("rendering terminal distribution: %v", err)
		}
	}
	logger.Infof("run %s (seed %d) finished in %v, outputs in %s", res.RunID, res.Seed, res.Elapsed, dir)
	return nil
}

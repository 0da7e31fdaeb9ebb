// cmd/simulate/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/lars-sto/retransmission-efficiency-simulation/internal/sim"
	"github.com/pion/logging"
)

var (
	seed        = flag.Int64("seed", 1, "base seed (run seed = seed + i), 0 to seed randomly")
	runs        = flag.Int("runs", 10, "repeats per scenario")
	trials      = flag.Int64("trials", sim.DefaultTrials, "packets per run")
	maxAttempts = flag.Int("max-attempts", sim.DefaultMaxAttempts, "transmissions per packet before a run fails")
	workers     = flag.Int("workers", 1, "parallel workers per run")
	configPath  = flag.String("config", "", "read scenarios from YAML `file`; flags given explicitly override it")
	outPath     = flag.String("out", "results/summary.csv", "output summary CSV file")
	aggPath     = flag.String("aggregate", "results/aggregate.csv", "output per-scenario aggregate CSV file (empty disables)")
	filter      = flag.String("scenario", "", "scenario name filter (substring)")
	csvDir      = flag.String("csvdir", "", "optional: write per-run trial trace CSV into this directory (empty disables)")
	tsOnly      = flag.String("timeseries", "", "optional: comma-separated scenario substrings to write traces for (requires -csvdir)")
	stride      = flag.Int64("stride", 1000, "write every n-th trial to the trace CSV")
	logLevel    = flag.String("loglevel", "info", "log level: disabled, error, warn, info, debug, trace")
)

func main() {
	flag.Parse()

	factory, err := sim.NewLoggerFactory(*logLevel, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := factory.NewLogger("simulate")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, factory, log); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, factory logging.LoggerFactory, log logging.LeveledLogger) (err error) {
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	scenarios, err := cfg.ScenarioList()
	if err != nil {
		return err
	}

	w, err := sim.NewSummaryCSVWriter(*outPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var agg *sim.AggregateCSVWriter
	if *aggPath != "" {
		agg, err = sim.NewAggregateCSVWriter(*aggPath)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := agg.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
	}

	allowTS := parseCSVList(*tsOnly)

	for _, sc := range scenarios {
		if *filter != "" && !strings.Contains(sc.Name, *filter) {
			continue
		}

		var means []float64
		expected := sim.ExpectedEfficiency(sc.Params, sc.Params.Capability())

		for i := 0; i < cfg.Runs; i++ {
			runSeed := cfg.Seed
			if runSeed != 0 {
				runSeed += int64(i)
			}

			// summary recorder (always)
			sumRec := sim.NewSummaryRecorder()

			// optional trial trace CSV recorder
			var rec sim.Recorder = sumRec
			if *csvDir != "" && wantTimeseries(sc.Name, allowTS) {
				path := filepath.Join(*csvDir, fmt.Sprintf("%s__seed%d.csv", sc.Name, runSeed))
				tsRec, err := sim.NewCSVRecorder(path, *stride)
				if err != nil {
					return err
				}
				rec = sim.MultiRecorder(sumRec, tsRec)
			}

			res, err := sim.RunScenario(ctx, sc, sim.RunOptions{
				Seed:        runSeed,
				MaxAttempts: cfg.MaxAttempts,
				Workers:     cfg.Workers,
				Recorder:    rec,
				Logger:      factory.NewLogger("sim"),
			})
			if errors.Is(err, sim.ErrRetryBudgetExceeded) {
				log.Warnf("scenario %q seed %d skipped: %v", sc.Name, res.Seed, err)
				continue
			}
			if err != nil {
				return fmt.Errorf("scenario %q: %w", sc.Name, err)
			}

			means = append(means, res.MeanEfficiency)
			if err := w.WriteRow(sim.NewSummaryRow(sc, res, sumRec)); err != nil {
				return err
			}
		}

		if agg != nil && len(means) > 0 {
			if err := agg.WriteRow(sim.Aggregate(sc.Name, sc.Params.Variant, means, expected)); err != nil {
				return err
			}
		}
	}

	return nil
}

// getConfig reads the YAML file if one is given; flags set on the command
// line take precedence over it.
func getConfig() (*sim.Config, error) {
	if *configPath == "" {
		return &sim.Config{
			Seed:        *seed,
			Runs:        *runs,
			Trials:      *trials,
			MaxAttempts: *maxAttempts,
			Workers:     *workers,
		}, nil
	}
	cfg, err := sim.LoadConfig(*configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = *seed
	}
	if cfg.Runs <= 0 {
		cfg.Runs = *runs
	}
	if cfg.Trials <= 0 {
		cfg.Trials = *trials
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = *maxAttempts
	}
	if cfg.Workers <= 0 {
		cfg.Workers = *workers
	}
	flag.Visit(func(f *flag.Flag) {
		updateConfig(cfg, f)
	})
	return cfg, nil
}

func updateConfig(cfg *sim.Config, f *flag.Flag) {
	switch f.Name {
	case "seed":
		cfg.Seed = *seed
	case "runs":
		cfg.Runs = *runs
	case "trials":
		cfg.Trials = *trials
	case "max-attempts":
		cfg.MaxAttempts = *maxAttempts
	case "workers":
		cfg.Workers = *workers
	}
}

func parseCSVList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func wantTimeseries(name string, allow []string) bool {
	// empty allowlist => never write traces
	if len(allow) == 0 {
		return false
	}
	for _, sub := range allow {
		if strings.Contains(name, sub) {
			return true
		}
	}
	return false
}

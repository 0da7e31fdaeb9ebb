// Command prompt asks for the parameters of one simulation on stdin and
// prints the average efficiency.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/lars-sto/retransmission-efficiency-simulation/internal/sim"
)

func main() {
	variant := flag.String("variant", string(sim.VariantFixed), "channel: bsc or two_state")
	trials := flag.Int64("trials", sim.DefaultTrials, "number of packets to simulate")
	seed := flag.Int64("seed", 0, "seed to use for the RNG, 0 to seed randomly")
	maxAttempts := flag.Int("max-attempts", sim.DefaultMaxAttempts, "transmissions per packet before giving up")
	workers := flag.Int("workers", 1, "parallel workers")
	metrics := flag.String("metrics", "", "optional: write run metrics CSV to `file`")
	logLevel := flag.String("loglevel", "error", "log level: disabled, error, warn, info, debug, trace")
	flag.Parse()

	factory, err := sim.NewLoggerFactory(*logLevel, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := factory.NewLogger("prompt")

	params, err := newPrompter(os.Stdin, os.Stdout).params(sim.Variant(*variant))
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	tStar := params.Capability()
	describe(os.Stdout, params, tStar)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := sim.RunScenario(ctx, sim.Scenario{Name: string(params.Variant), Params: params, Trials: *trials}, sim.RunOptions{
		Seed:        *seed,
		MaxAttempts: *maxAttempts,
		Workers:     *workers,
		Logger:      factory.NewLogger("sim"),
	})
	if errors.Is(err, sim.ErrRetryBudgetExceeded) {
		fmt.Fprintln(os.Stdout, "Simulation aborted: a packet could not be delivered within the retry budget.")
		log.Warnf("%v", err)
		os.Exit(1)
	}
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	if *metrics != "" {
		ml, err := sim.NewMetricsLogger(*metrics)
		if err != nil {
			log.Errorf("%v", err)
			os.Exit(1)
		}
		ml.EmitRun(res)
		if err := ml.Close(); err != nil {
			log.Errorf("%v", err)
			os.Exit(1)
		}
	}

	report(os.Stdout, res)
}

func describe(w io.Writer, p sim.Params, tStar int) {
	fmt.Fprintln(w, "Running simulation for:")
	fmt.Fprintln(w, "  User Data (u):", p.UserData)
	fmt.Fprintln(w, "  Redundant Bits (n-k):", p.RedundantBits)
	if p.Variant == sim.VariantMarkov {
		fmt.Fprintf(w, "  Probabilities: pg = %v, pb = %v\n", p.PG, p.PB)
	} else {
		fmt.Fprintln(w, "  Probability (p):", p.ErrorProb)
	}
	fmt.Fprintln(w, "  Error Correction Capability:", tStar)
}

func report(w io.Writer, res sim.RunResult) {
	fmt.Fprintln(w, "Simulation Complete.")
	fmt.Fprintf(w, "  The average efficiency of all packets is: %.4g\n", res.MeanEfficiency)
}

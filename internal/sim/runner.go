package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pion/logging"
)

const ctxCheckEvery = 4096

// segment is the partial outcome of one contiguous range of trials.
type segment struct {
	trials      int64
	mean        float64
	sumAttempts int64
	maxAttempts int
	bad         int64
}

// merge folds o into s keeping an incremental mean, so a run whose samples
// are all equal reports exactly that value.
func (s *segment) merge(o segment) {
	if o.trials == 0 {
		return
	}
	if s.trials == 0 {
		*s = o
		return
	}
	total := s.trials + o.trials
	s.mean += (o.mean - s.mean) * float64(o.trials) / float64(total)
	s.trials = total
	s.sumAttempts += o.sumAttempts
	s.bad += o.bad
	if o.maxAttempts > s.maxAttempts {
		s.maxAttempts = o.maxAttempts
	}
}

// RunScenario computes t* once and delivers sc.Trials packets over one
// persistent channel per worker, returning the mean transmission efficiency.
func RunScenario(ctx context.Context, sc Scenario, opt RunOptions) (RunResult, error) {
	p := sc.Params
	res := RunResult{
		Scenario: sc.Name,
		Variant:  p.Variant,
	}
	if opt.Recorder != nil {
		defer func() { _ = opt.Recorder.Close() }()
	}
	if err := p.Validate(); err != nil {
		return res, err
	}

	log := opt.Logger
	if log == nil {
		log = logging.NewDefaultLoggerFactory().NewLogger("sim")
	}

	seed, err := resolveSeed(opt.Seed)
	if err != nil {
		return res, fmt.Errorf("draw seed: %w", err)
	}
	res.Seed = seed

	trials := sc.Trials
	if trials <= 0 {
		trials = DefaultTrials
	}
	workers := opt.Workers
	if workers <= 0 {
		workers = 1
	}
	if int64(workers) > trials {
		workers = int(trials)
	}
	res.Workers = workers

	tStar := p.Capability()
	res.PacketSize = p.PacketSize()
	res.Capability = tStar
	res.ExpectedEfficiency = ExpectedEfficiency(p, tStar)

	est := NewEstimator(p, tStar, opt.MaxAttempts)
	rec := opt.Recorder
	if rec != nil && workers > 1 {
		rec = &lockedRecorder{r: rec}
	}

	log.Infof("run %q: variant=%s n=%d t*=%d trials=%d workers=%d seed=%d",
		sc.Name, p.Variant, res.PacketSize, tStar, trials, workers, seed)
	start := time.Now()

	segs := make([]segment, workers)
	errs := make([]error, workers)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	run := func(w int) {
		lo := trials * int64(w) / int64(workers)
		hi := trials * int64(w+1) / int64(workers)
		ch, err := NewChannel(p, streamSeed(seed, w))
		if err != nil {
			errs[w] = err
			cancel()
			return
		}
		segs[w], errs[w] = runSegment(runCtx, est, ch, lo, hi, rec, log)
		if errs[w] != nil {
			cancel()
		}
	}

	if workers == 1 {
		run(0)
	} else {
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				run(w)
			}(w)
		}
		wg.Wait()
	}

	res.Elapsed = time.Since(start)
	if err := firstError(ctx, errs); err != nil {
		log.Warnf("run %q failed after %v: %v", sc.Name, res.Elapsed, err)
		return res, err
	}

	var total segment
	for _, s := range segs {
		total.merge(s)
	}
	res.Trials = total.trials
	res.MeanEfficiency = total.mean
	res.MeanAttempts = float64(total.sumAttempts) / float64(total.trials)
	res.MaxAttempts = total.maxAttempts
	res.Retransmissions = total.sumAttempts - total.trials
	res.BadStateFraction = float64(total.bad) / float64(total.trials)

	log.Infof("run %q: mean efficiency %.4g (expected %.4g) mean attempts %.4f in %v",
		sc.Name, res.MeanEfficiency, res.ExpectedEfficiency, res.MeanAttempts, res.Elapsed)
	return res, nil
}

func runSegment(ctx context.Context, est *Estimator, ch Channel, lo, hi int64, rec Recorder, log logging.LeveledLogger) (segment, error) {
	var seg segment
	progressEvery := (hi - lo) / 10
	for i := lo; i < hi; i++ {
		if (i-lo)%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return seg, err
			}
		}
		s, err := est.Send(ch)
		if err != nil {
			return seg, fmt.Errorf("trial %d: %w", i, err)
		}
		s.Trial = i

		seg.trials++
		seg.mean += (s.Efficiency - seg.mean) / float64(seg.trials)
		seg.sumAttempts += int64(s.Attempts)
		if s.Attempts > seg.maxAttempts {
			seg.maxAttempts = s.Attempts
		}
		if s.State == StateBad {
			seg.bad++
		}
		if rec != nil {
			rec.OnTrial(s)
		}
		if progressEvery > 0 && (i-lo+1)%progressEvery == 0 {
			log.Debugf("trials [%d,%d): %d done, running mean %.6f", lo, hi, i-lo+1, seg.mean)
		}
	}
	return seg, nil
}

// firstError prefers a real failure over the cancellations it caused.
func firstError(ctx context.Context, errs []error) error {
	var canceled error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if ctx.Err() == nil && errors.Is(err, context.Canceled) {
			if canceled == nil {
				canceled = err
			}
			continue
		}
		return err
	}
	return canceled
}

// Simulate runs trials packets with params p and returns the average
// efficiency.
func Simulate(ctx context.Context, p Params, trials int64, seed int64) (float64, error) {
	res, err := RunScenario(ctx, Scenario{Params: p, Trials: trials}, RunOptions{Seed: seed})
	if err != nil {
		return 0, err
	}
	return res.MeanEfficiency, nil
}

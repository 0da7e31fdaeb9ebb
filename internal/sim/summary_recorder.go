package sim

import (
	"github.com/DataDog/sketches-go/ddsketch"
)

// SummaryQuantiles are the quantiles reported by SummaryRecorder.
var SummaryQuantiles = []float64{0.05, 0.50, 0.95}

// SummaryRecorder aggregates per-trial samples into run-level metrics.
// Efficiency and attempt distributions are kept in DDSketches with 1%
// relative accuracy, so memory stays flat for millions of trials.
type SummaryRecorder struct {
	efficiency *ddsketch.DDSketch
	attempts   *ddsketch.DDSketch

	trials      int64
	sumAttempts int64
	maxAttempts int
	badTrials   int64
}

func NewSummaryRecorder() *SummaryRecorder {
	eff, err := ddsketch.NewDefaultDDSketch(0.01)
	if err != nil {
		panic(err)
	}
	att, err := ddsketch.NewDefaultDDSketch(0.01)
	if err != nil {
		panic(err)
	}
	return &SummaryRecorder{efficiency: eff, attempts: att}
}

func (r *SummaryRecorder) OnTrial(s TrialSample) {
	r.trials++
	r.sumAttempts += int64(s.Attempts)
	if s.Attempts > r.maxAttempts {
		r.maxAttempts = s.Attempts
	}
	if s.State == StateBad {
		r.badTrials++
	}
	_ = r.efficiency.Add(s.Efficiency)
	_ = r.attempts.Add(float64(s.Attempts))
}

func (r *SummaryRecorder) Close() error { return nil }

func (r *SummaryRecorder) Trials() int64 { return r.trials }

func (r *SummaryRecorder) MeanAttempts() float64 {
	if r.trials <= 0 {
		return 0
	}
	return float64(r.sumAttempts) / float64(r.trials)
}

func (r *SummaryRecorder) MaxAttempts() int { return r.maxAttempts }

// BadStateFraction is the share of trials after which the channel was Bad.
func (r *SummaryRecorder) BadStateFraction() float64 {
	if r.trials <= 0 {
		return 0
	}
	return float64(r.badTrials) / float64(r.trials)
}

// EfficiencyQuantiles returns the SummaryQuantiles of the efficiency
// distribution, or zeros when nothing was recorded.
func (r *SummaryRecorder) EfficiencyQuantiles() []float64 {
	return quantiles(r.efficiency)
}

func (r *SummaryRecorder) AttemptQuantiles() []float64 {
	return quantiles(r.attempts)
}

func quantiles(s *ddsketch.DDSketch) []float64 {
	res, err := s.GetValuesAtQuantiles(SummaryQuantiles)
	if err != nil {
		return make([]float64, len(SummaryQuantiles))
	}
	return res
}

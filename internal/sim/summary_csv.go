package sim

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

type SummaryRow struct {
	Scenario string
	Variant  Variant
	Seed     int64
	Workers  int

	UserData      int
	RedundantBits int
	PacketSize    int
	Capability    int

	ErrorProb float64
	PG        float64
	PB        float64

	Trials             int64
	MeanEfficiency     float64
	ExpectedEfficiency float64

	EfficiencyP5  float64
	EfficiencyP50 float64
	EfficiencyP95 float64

	MeanAttempts     float64
	AttemptsP95      float64
	MaxAttempts      int
	Retransmissions  int64
	BadStateFraction float64
}

// NewSummaryRow assembles a row from a run result and, if given, the
// summary recorder that observed the run.
func NewSummaryRow(sc Scenario, res RunResult, rec *SummaryRecorder) SummaryRow {
	row := SummaryRow{
		Scenario: sc.Name,
		Variant:  res.Variant,
		Seed:     res.Seed,
		Workers:  res.Workers,

		UserData:      sc.Params.UserData,
		RedundantBits: sc.Params.RedundantBits,
		PacketSize:    res.PacketSize,
		Capability:    res.Capability,

		ErrorProb: sc.Params.ErrorProb,
		PG:        sc.Params.PG,
		PB:        sc.Params.PB,

		Trials:             res.Trials,
		MeanEfficiency:     res.MeanEfficiency,
		ExpectedEfficiency: res.ExpectedEfficiency,

		MeanAttempts:     res.MeanAttempts,
		MaxAttempts:      res.MaxAttempts,
		Retransmissions:  res.Retransmissions,
		BadStateFraction: res.BadStateFraction,
	}
	if rec != nil {
		// the recorder saw every trial: its attempt stats replace the merged ones
		if rec.Trials() == res.Trials {
			row.MeanAttempts = rec.MeanAttempts()
			row.MaxAttempts = rec.MaxAttempts()
			row.BadStateFraction = rec.BadStateFraction()
		}
		eq := rec.EfficiencyQuantiles()
		row.EfficiencyP5, row.EfficiencyP50, row.EfficiencyP95 = eq[0], eq[1], eq[2]
		row.AttemptsP95 = rec.AttemptQuantiles()[2]
	}
	return row
}

type SummaryCSVWriter struct {
	f *os.File
	w *csv.Writer
}

func NewSummaryCSVWriter(path string) (*SummaryCSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)

	hdr := []string{
		"scenario",
		"variant",
		"seed",
		"workers",
		"user_data",
		"redundant_bits",
		"packet_size",
		"t_star",
		"error_prob",
		"pg",
		"pb",
		"trials",
		"mean_efficiency",
		"expected_efficiency",
		"efficiency_p5",
		"efficiency_p50",
		"efficiency_p95",
		"mean_attempts",
		"attempts_p95",
		"max_attempts",
		"retransmissions",
		"bad_state_fraction",
	}
	if err := w.Write(hdr); err != nil {
		_ = f.Close()
		return nil, err
	}
	w.Flush()
	return &SummaryCSVWriter{f: f, w: w}, nil
}

func (s *SummaryCSVWriter) WriteRow(r SummaryRow) error {
	row := []string{
		r.Scenario,
		string(r.Variant),
		strconv.FormatInt(r.Seed, 10),
		strconv.Itoa(r.Workers),

		strconv.Itoa(r.UserData),
		strconv.Itoa(r.RedundantBits),
		strconv.Itoa(r.PacketSize),
		strconv.Itoa(r.Capability),

		ff(r.ErrorProb),
		ff(r.PG),
		ff(r.PB),

		strconv.FormatInt(r.Trials, 10),
		ff(r.MeanEfficiency),
		ffOpt(r.ExpectedEfficiency),

		ff(r.EfficiencyP5),
		ff(r.EfficiencyP50),
		ff(r.EfficiencyP95),

		ff(r.MeanAttempts),
		ff(r.AttemptsP95),
		strconv.Itoa(r.MaxAttempts),
		strconv.FormatInt(r.Retransmissions, 10),
		ff(r.BadStateFraction),
	}
	return s.w.Write(row)
}

func (s *SummaryCSVWriter) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		_ = s.f.Close()
		return err
	}
	return s.f.Close()
}

// ffOpt leaves the cell empty for values that do not exist.
func ffOpt(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return ff(v)
}

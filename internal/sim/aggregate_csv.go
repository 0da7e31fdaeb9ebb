package sim

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/aclements/go-moremath/stats"
)

// AggregateRow summarizes the mean efficiencies of several seeds of one
// scenario.
type AggregateRow struct {
	Scenario string
	Variant  Variant
	Runs     int

	Mean   float64
	StdDev float64
	P5     float64
	P25    float64
	P50    float64
	P75    float64
	P95    float64

	Expected float64
}

func Aggregate(scenario string, variant Variant, means []float64, expected float64) AggregateRow {
	row := AggregateRow{Scenario: scenario, Variant: variant, Runs: len(means), Expected: expected}
	if len(means) == 0 {
		return row
	}
	s := stats.Sample{Xs: append([]float64(nil), means...)}
	sort.Float64s(s.Xs)
	s.Sorted = true

	row.Mean = s.Mean()
	if len(means) > 1 {
		row.StdDev = s.StdDev()
	}
	row.P5 = s.Quantile(0.05)
	row.P25 = s.Quantile(0.25)
	row.P50 = s.Quantile(0.50)
	row.P75 = s.Quantile(0.75)
	row.P95 = s.Quantile(0.95)
	return row
}

type AggregateCSVWriter struct {
	f *os.File
	w *csv.Writer
}

func NewAggregateCSVWriter(path string) (*AggregateCSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	hdr := []string{
		"scenario", "variant", "runs",
		"mean", "stddev", "p5", "p25", "p50", "p75", "p95",
		"expected",
	}
	if err := w.Write(hdr); err != nil {
		_ = f.Close()
		return nil, err
	}
	w.Flush()
	return &AggregateCSVWriter{f: f, w: w}, nil
}

func (a *AggregateCSVWriter) WriteRow(r AggregateRow) error {
	return a.w.Write([]string{
		r.Scenario,
		string(r.Variant),
		strconv.Itoa(r.Runs),
		ff(r.Mean),
		ff(r.StdDev),
		ff(r.P5),
		ff(r.P25),
		ff(r.P50),
		ff(r.P75),
		ff(r.P95),
		ffOpt(r.Expected),
	})
}

func (a *AggregateCSVWriter) Close() error {
	a.w.Flush()
	if err := a.w.Error(); err != nil {
		_ = a.f.Close()
		return err
	}
	return a.f.Close()
}

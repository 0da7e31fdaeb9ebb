package sim

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

type Recorder interface {
	OnTrial(s TrialSample)
	Close() error
}

// CSVRecorder writes every stride-th trial as one CSV row.
type CSVRecorder struct {
	f      *os.File
	w      *csv.Writer
	stride int64
}

func NewCSVRecorder(path string, stride int64) (*CSVRecorder, error) {
	if stride <= 0 {
		stride = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)

	hdr := []string{
		"trial",
		"attempts",
		"errors",
		"efficiency",
		"state",
	}
	if err := w.Write(hdr); err != nil {
		_ = f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVRecorder{f: f, w: w, stride: stride}, nil
}

func (r *CSVRecorder) OnTrial(s TrialSample) {
	if s.Trial%r.stride != 0 {
		return
	}
	row := []string{
		strconv.FormatInt(s.Trial, 10),
		strconv.Itoa(s.Attempts),
		strconv.Itoa(s.Errors),
		ff(s.Efficiency),
		s.State.String(),
	}
	_ = r.w.Write(row)
}

func (r *CSVRecorder) Close() error {
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		_ = r.f.Close()
		return err
	}
	return r.f.Close()
}

func ff(v float64) string { return fmt.Sprintf("%.6f", v) }

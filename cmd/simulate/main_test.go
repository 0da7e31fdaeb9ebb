package main

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lars-sto/retransmission-efficiency-simulation/internal/sim"
)

func TestParseCSVList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"  ", nil},
		{"bsc", []string{"bsc"}},
		{" bsc , two_state,,", []string{"bsc", "two_state"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parseCSVList(tt.in)); diff != "" {
			t.Errorf("parseCSVList(%q) (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestWantTimeseries(t *testing.T) {
	allow := []string{"r50", "two_state"}
	if !wantTimeseries("bsc_u1000_r50_p1e-3", allow) {
		t.Error("expected match on r50")
	}
	if wantTimeseries("bsc_u1000_r25_p1e-3", allow) {
		t.Error("unexpected match")
	}
	if wantTimeseries("anything", nil) {
		t.Error("empty allowlist must not match")
	}
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestRunWritesSummaryAndAggregate(t *testing.T) {
	dir := t.TempDir()
	*outPath = filepath.Join(dir, "summary.csv")
	*aggPath = filepath.Join(dir, "aggregate.csv")
	*filter = "bsc_u1000_r50_"
	*runs = 2
	*trials = 200
	*seed = 1

	factory, err := sim.NewLoggerFactory("disabled", io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if err := run(context.Background(), factory, factory.NewLogger("test")); err != nil {
		t.Fatal(err)
	}

	summary := readRows(t, *outPath)
	if len(summary) != 3 {
		t.Fatalf("summary has %d rows, want header + 2", len(summary))
	}
	if summary[1][2] != "1" || summary[2][2] != "2" {
		t.Errorf("seeds %q %q, want 1 2", summary[1][2], summary[2][2])
	}
	agg := readRows(t, *aggPath)
	if len(agg) != 2 || agg[1][0] != "bsc_u1000_r50_p1e-3" || agg[1][2] != "2" {
		t.Errorf("unexpected aggregate %v", agg)
	}
}

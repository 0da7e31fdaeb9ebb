package sim

import (
	"errors"
	"testing"
)

// scriptedChannel replays a fixed sequence of error counts, repeating the
// last one forever.
type scriptedChannel struct {
	seq   []int
	i     int
	state ChannelState
}

func (c *scriptedChannel) Name() string { return "scripted" }

func (c *scriptedChannel) Errors(int) int {
	e := c.seq[len(c.seq)-1]
	if c.i < len(c.seq) {
		e = c.seq[c.i]
	}
	c.i++
	return e
}

func (c *scriptedChannel) State() ChannelState { return c.state }

func TestEstimatorSend(t *testing.T) {
	p := Params{UserData: 1000, RedundantBits: 50, Variant: VariantFixed}
	tests := []struct {
		name         string
		seq          []int
		wantAttempts int
		wantErrors   int
	}{
		{"first try", []int{0}, 1, 0},
		{"at capability", []int{5}, 1, 5},
		{"two retransmissions", []int{9, 6, 3}, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEstimator(p, 5, 0)
			s, err := e.Send(&scriptedChannel{seq: tt.seq})
			if err != nil {
				t.Fatal(err)
			}
			if s.Attempts != tt.wantAttempts || s.Errors != tt.wantErrors {
				t.Errorf("attempts %d errors %d, want %d %d", s.Attempts, s.Errors, tt.wantAttempts, tt.wantErrors)
			}
			want := 1000.0 / (float64(tt.wantAttempts) * 1150)
			if s.Efficiency != want {
				t.Errorf("efficiency %v, want %v", s.Efficiency, want)
			}
		})
	}
}

func TestEstimatorRecordsState(t *testing.T) {
	e := NewEstimator(Params{UserData: 10, Variant: VariantMarkov}, 0, 0)
	s, err := e.Send(&scriptedChannel{seq: []int{0}, state: StateBad})
	if err != nil {
		t.Fatal(err)
	}
	if s.State != StateBad {
		t.Errorf("state %v, want bad", s.State)
	}
}

func TestEstimatorRetryBudget(t *testing.T) {
	e := NewEstimator(Params{UserData: 10}, 2, 4)
	ch := &scriptedChannel{seq: []int{3}}
	s, err := e.Send(ch)
	if !errors.Is(err, ErrRetryBudgetExceeded) {
		t.Fatalf("got %v, want ErrRetryBudgetExceeded", err)
	}
	if s.Attempts != 4 || ch.i != 4 {
		t.Errorf("attempts %d, draws %d, want 4", s.Attempts, ch.i)
	}
}

func TestEstimatorNegativeCapability(t *testing.T) {
	e := NewEstimator(Params{UserData: 10}, -1, 100)
	if _, err := e.Send(&scriptedChannel{seq: []int{0}}); !errors.Is(err, ErrRetryBudgetExceeded) {
		t.Fatalf("got %v, want ErrRetryBudgetExceeded", err)
	}
}

func TestEstimatorDefaultBudget(t *testing.T) {
	if e := NewEstimator(Params{UserData: 1}, 0, 0); e.MaxAttempts != DefaultMaxAttempts {
		t.Errorf("MaxAttempts %d, want %d", e.MaxAttempts, DefaultMaxAttempts)
	}
}

package sim

import (
	"errors"
	"math"
	"testing"
)

func TestFixedChannelDegenerate(t *testing.T) {
	zero := NewFixedChannel(0, 1)
	one := NewFixedChannel(1, 1)
	for i := 0; i < 1000; i++ {
		if e := zero.Errors(1150); e != 0 {
			t.Fatalf("p=0 produced %d errors", e)
		}
		if e := one.Errors(1150); e != 1150 {
			t.Fatalf("p=1 produced %d errors", e)
		}
	}
}

func TestFixedChannelMean(t *testing.T) {
	const (
		n     = 1150
		p     = 0.01
		draws = 20000
	)
	c := NewFixedChannel(p, 42)
	sum := 0
	for i := 0; i < draws; i++ {
		e := c.Errors(n)
		if e < 0 || e > n {
			t.Fatalf("error count %d out of [0,%d]", e, n)
		}
		sum += e
	}
	mean := float64(sum) / draws
	if math.Abs(mean-n*p) > 0.2 {
		t.Errorf("mean errors %.3f, want about %.3f", mean, n*p)
	}
}

func TestChannelSameSeedSameDraws(t *testing.T) {
	cfg := MarkovConfig{PG: 0.001, PB: 0.05, PGG: 0.9, PBB: 0.9}
	a, b := NewMarkovChannel(cfg, 7), NewMarkovChannel(cfg, 7)
	for i := 0; i < 5000; i++ {
		ea, eb := a.Errors(1000), b.Errors(1000)
		if ea != eb || a.State() != b.State() {
			t.Fatalf("draw %d diverged: %d/%v vs %d/%v", i, ea, a.State(), eb, b.State())
		}
	}
}

func TestMarkovChannelStaysGood(t *testing.T) {
	c := NewMarkovChannel(MarkovConfig{PG: 0, PB: 1, PGG: 1, PBB: 0.9}, 3)
	for i := 0; i < 10000; i++ {
		if e := c.Errors(64); e != 0 {
			t.Fatalf("call %d: %d errors while Good with pg=0", i, e)
		}
		if c.State() != StateGood {
			t.Fatalf("call %d: left Good with pgg=1", i)
		}
	}
}

func TestMarkovChannelUsesStateBeforeTransition(t *testing.T) {
	// pgg=pbb=0 flips the state on every call.
	c := NewMarkovChannel(MarkovConfig{PG: 0, PB: 1, PGG: 0, PBB: 0}, 5)
	for i := 0; i < 10; i++ {
		want, wantNext := 0, StateBad
		if i%2 == 1 {
			want, wantNext = 10, StateGood
		}
		if e := c.Errors(10); e != want {
			t.Fatalf("call %d: %d errors, want %d", i, e, want)
		}
		if c.State() != wantNext {
			t.Fatalf("call %d: state %v, want %v", i, c.State(), wantNext)
		}
	}
}

func TestMarkovChannelStationaryShare(t *testing.T) {
	c := NewMarkovChannel(MarkovConfig{PGG: 0.9, PBB: 0.9}, 11)
	bad := 0
	const calls = 100000
	for i := 0; i < calls; i++ {
		c.Errors(1)
		if c.State() == StateBad {
			bad++
		}
	}
	if share := float64(bad) / calls; math.Abs(share-0.5) > 0.05 {
		t.Errorf("bad share %.3f, want about 0.5", share)
	}
}

func TestMarkovZeroProbabilities(t *testing.T) {
	c := NewMarkovChannel(MarkovConfig{PGG: 0.9, PBB: 0.9}, 9)
	for i := 0; i < 1000; i++ {
		if e := c.Errors(1150); e != 0 {
			t.Fatalf("pg=pb=0 produced %d errors", e)
		}
	}
}

func TestNewChannel(t *testing.T) {
	ch, err := NewChannel(Params{Variant: VariantMarkov, PG: 0.1, PB: 0.2, PGG: 0.95, PBB: 0}, 1)
	if err != nil {
		t.Fatal(err)
	}
	mc, ok := ch.(*MarkovChannel)
	if !ok {
		t.Fatalf("got %T, want *MarkovChannel", ch)
	}
	if mc.cfg.PGG != 0.95 || mc.cfg.PBB != 0 {
		t.Errorf("persistence %v/%v, want 0.95/0", mc.cfg.PGG, mc.cfg.PBB)
	}
	if mc.Name() != "two_state" {
		t.Errorf("name %q", mc.Name())
	}

	ch, err = NewChannel(Params{Variant: VariantFixed, ErrorProb: 0.3}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if fc, ok := ch.(*FixedChannel); !ok || fc.P != 0.3 {
		t.Errorf("got %#v", ch)
	}

	if _, err := NewChannel(Params{Variant: "gilbert"}, 1); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("got %v, want ErrUnknownVariant", err)
	}
}

package sim

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Channel produces the number of bit errors hitting one transmission of a
// packet of the given size.
type Channel interface {
	Name() string
	Errors(bits int) int
}

// ChannelState is the hidden state of a Markov-modulated channel.
type ChannelState uint8

const (
	StateGood ChannelState = iota
	StateBad
)

func (s ChannelState) String() string {
	if s == StateBad {
		return "bad"
	}
	return "good"
}

// stateful is implemented by channels with a hidden state worth recording.
type stateful interface {
	State() ChannelState
}

// binomial draws Binomial(bits, p) from src.
func binomial(src rand.Source, bits int, p float64) int {
	if bits <= 0 || p <= 0 {
		return 0
	}
	if p >= 1 {
		return bits
	}
	return int(distuv.Binomial{N: float64(bits), P: p, Src: src}.Rand())
}

// FixedChannel is a binary symmetric channel with a constant bit error rate.
type FixedChannel struct {
	P   float64
	src rand.Source
}

// NewFixedChannel returns a BSC with bit error rate p seeded with seed.
func NewFixedChannel(p float64, seed uint64) *FixedChannel {
	return &FixedChannel{P: p, src: rand.NewSource(seed)}
}

func (c *FixedChannel) Name() string { return string(VariantFixed) }

func (c *FixedChannel) Errors(bits int) int {
	return binomial(c.src, bits, c.P)
}

// MarkovConfig holds the error rates and persistence of the two states.
type MarkovConfig struct {
	PG  float64 // bit error rate in the Good state
	PB  float64 // bit error rate in the Bad state
	PGG float64 // probability of staying Good
	PBB float64 // probability of staying Bad
}

// MarkovChannel is a binary symmetric channel whose bit error rate is
// modulated by a two-state (Good/Bad) Markov chain. The state survives across
// packets for the lifetime of the channel.
type MarkovChannel struct {
	cfg   MarkovConfig
	state ChannelState
	src   rand.Source
	r     *rand.Rand
}

func NewMarkovChannel(cfg MarkovConfig, seed uint64) *MarkovChannel {
	src := rand.NewSource(seed)
	return &MarkovChannel{cfg: cfg, state: StateGood, src: src, r: rand.New(src)}
}

func (c *MarkovChannel) Name() string { return string(VariantMarkov) }

func (c *MarkovChannel) State() ChannelState { return c.state }

// Errors uses the error rate of the current state, then decides with the
// same uniform draw whether the next call sees the other state.
func (c *MarkovChannel) Errors(bits int) int {
	q := c.r.Float64()

	var p float64
	switch c.state {
	case StateGood:
		p = c.cfg.PG
		if q >= c.cfg.PGG {
			c.state = StateBad
		}
	case StateBad:
		p = c.cfg.PB
		if q >= c.cfg.PBB {
			c.state = StateGood
		}
	}
	return binomial(c.src, bits, p)
}

// NewChannel builds the channel for p.Variant.
func NewChannel(p Params, seed uint64) (Channel, error) {
	switch p.Variant {
	case VariantFixed:
		return NewFixedChannel(p.ErrorProb, seed), nil
	case VariantMarkov:
		return NewMarkovChannel(MarkovConfig{PG: p.PG, PB: p.PB, PGG: p.PGG, PBB: p.PBB}, seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, p.Variant)
	}
}

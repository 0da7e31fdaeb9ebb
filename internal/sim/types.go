package sim

import (
	"errors"
	"fmt"

	"github.com/lars-sto/retransmission-efficiency-simulation/internal/hamming"
	"github.com/pion/logging"
)

type Variant string

const (
	VariantFixed  Variant = "bsc"
	VariantMarkov Variant = "two_state"
)

const (
	DefaultTrials      int64 = 1_000_000
	DefaultMaxAttempts       = 100_000
	DefaultPersistence       = 0.9
)

var (
	ErrInvalidParams  = errors.New("invalid simulation parameters")
	ErrUnknownVariant = errors.New("unknown channel variant")
)

// Params holds one simulation's inputs. PGG and PBB are the probabilities of
// staying in the Good and Bad state and are used as given.
type Params struct {
	UserData      int
	RedundantBits int
	Variant       Variant

	ErrorProb float64

	PG  float64
	PB  float64
	PGG float64
	PBB float64
}

func (p Params) PacketSize() int { return hamming.PacketSize(p.UserData, p.RedundantBits) }

func (p Params) TotData() int { return hamming.TotData(p.UserData) }

// Capability is t* for these parameters.
func (p Params) Capability() int { return hamming.CapabilityFor(p.UserData, p.RedundantBits) }


func (p Params) Validate() error {
	if p.UserData <= 0 {
		return fmt.Errorf("%w: user data must be greater than 0, got %d", ErrInvalidParams, p.UserData)
	}
	if p.RedundantBits < 0 {
		return fmt.Errorf("%w: redundant bits must be >= 0, got %d", ErrInvalidParams, p.RedundantBits)
	}
	type prob struct {
		name string
		v    float64
	}
	var probs []prob
	switch p.Variant {
	case VariantFixed:
		probs = []prob{{"error_prob", p.ErrorProb}}
	case VariantMarkov:
		probs = []prob{{"pg", p.PG}, {"pb", p.PB}, {"pgg", p.PGG}, {"pbb", p.PBB}}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownVariant, p.Variant)
	}
	for _, pr := range probs {
		if !ValidProbability(pr.v) {
			return fmt.Errorf("%w: %s must be in [0, 1], got %v", ErrInvalidParams, pr.name, pr.v)
		}
	}
	return nil
}

// ValidProbability reports whether v lies in [0, 1].
func ValidProbability(v float64) bool {
	return v >= 0 && v <= 1
}

type Scenario struct {
	Name   string
	Params Params
	Trials int64
}

type RunOptions struct {
	// Seed 0 draws a random seed; the one used is reported in RunResult.
	Seed        int64
	MaxAttempts int
	Workers     int
	Recorder    Recorder
	Logger      logging.LeveledLogger
}

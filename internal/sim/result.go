package sim

import "time"

type RunResult struct {
	Scenario string
	Variant  Variant
	Seed     int64
	Workers  int

	Trials     int64
	PacketSize int
	Capability int

	MeanEfficiency     float64
	ExpectedEfficiency float64 // closed form, NaN where none exists

	MeanAttempts     float64
	MaxAttempts      int
	Retransmissions  int64
	BadStateFraction float64

	Elapsed time.Duration
}

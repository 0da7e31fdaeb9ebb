package sim

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// SuccessProbability is the chance that one transmission over a binary
// symmetric channel with bit error rate p carries at most tStar errors.
func SuccessProbability(bits, tStar int, p float64) float64 {
	if tStar < 0 {
		return 0
	}
	if p <= 0 || tStar >= bits {
		return 1
	}
	return distuv.Binomial{N: float64(bits), P: p}.CDF(float64(tStar))
}

// ExpectedEfficiency is the closed-form mean efficiency for the fixed
// channel. Attempts are geometric with success probability s, and
// E[1/A] = -s*ln(s)/(1-s). The Markov channel has no closed form here and
// yields NaN.
func ExpectedEfficiency(p Params, tStar int) float64 {
	if p.Variant != VariantFixed {
		return math.NaN()
	}
	n := p.PacketSize()
	s := SuccessProbability(n, tStar, p.ErrorProb)
	base := float64(p.UserData) / float64(n)
	switch {
	case s <= 0:
		return 0
	case s >= 1:
		return base
	}
	return base * s * -math.Log(s) / (1 - s)
}

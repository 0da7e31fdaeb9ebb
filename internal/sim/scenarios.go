package sim

import "fmt"

// DefaultScenarios sweeps redundancy for a 1000 bit payload over a BSC and
// over a Good/Bad channel with the same mean bit error rate.
func DefaultScenarios() []Scenario {
	var out []Scenario
	for _, r := range []int{0, 25, 50, 100} {
		out = append(out, FixedScenario(fmt.Sprintf("bsc_u1000_r%d_p1e-3", r), 1000, r, 0.001))
	}
	for _, r := range []int{0, 25, 50, 100} {
		out = append(out, MarkovScenario(fmt.Sprintf("two_state_u1000_r%d_pg1e-4_pb1.9e-3", r), 1000, r, 0.0001, 0.0019))
	}
	return out
}

func FixedScenario(name string, userData, redundantBits int, p float64) Scenario {
	return Scenario{
		Name: name,
		Params: Params{
			UserData:      userData,
			RedundantBits: redundantBits,
			Variant:       VariantFixed,
			ErrorProb:     p,
		},
	}
}

func MarkovScenario(name string, userData, redundantBits int, pg, pb float64) Scenario {
	return Scenario{
		Name: name,
		Params: Params{
			UserData:      userData,
			RedundantBits: redundantBits,
			Variant:       VariantMarkov,
			PG:            pg,
			PB:            pb,
			PGG:           DefaultPersistence,
			PBB:           DefaultPersistence,
		},
	}
}

package sim

import (
	"errors"
	"fmt"
)

var ErrRetryBudgetExceeded = errors.New("retry budget exceeded")

// TrialSample is the outcome of delivering one logical packet.
type TrialSample struct {
	Trial      int64
	Attempts   int
	Errors     int // error count of the accepted transmission
	Efficiency float64
	State      ChannelState
}

// Estimator retransmits a packet until the channel leaves at most
// Capability errors in it.
type Estimator struct {
	UserData    int
	PacketSize  int
	Capability  int
	MaxAttempts int
}

func NewEstimator(p Params, tStar, maxAttempts int) *Estimator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Estimator{
		UserData:    p.UserData,
		PacketSize:  p.PacketSize(),
		Capability:  tStar,
		MaxAttempts: maxAttempts,
	}
}

// Send simulates one packet over ch. It fails with ErrRetryBudgetExceeded
// once MaxAttempts transmissions were all uncorrectable.
func (e *Estimator) Send(ch Channel) (TrialSample, error) {
	var s TrialSample
	for s.Attempts < e.MaxAttempts {
		s.Attempts++
		s.Errors = ch.Errors(e.PacketSize)
		if s.Errors <= e.Capability {
			s.Efficiency = float64(e.UserData) / (float64(s.Attempts) * float64(e.PacketSize))
			if st, ok := ch.(stateful); ok {
				s.State = st.State()
			}
			return s, nil
		}
	}
	return s, fmt.Errorf("%w: %d attempts, last had %d errors, t*=%d",
		ErrRetryBudgetExceeded, s.Attempts, s.Errors, e.Capability)
}

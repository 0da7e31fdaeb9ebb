package sim

import "sync"

// MultiRecorder fan-outs samples to multiple Recorder implementations
type multiRecorder struct {
	rs []Recorder
}

// MultiRecorder creates a Recorder that forwards OnTrial/Close to all recorders
func MultiRecorder(rs ...Recorder) Recorder {
	out := &multiRecorder{rs: make([]Recorder, 0, len(rs))}
	for _, r := range rs {
		if r != nil {
			out.rs = append(out.rs, r)
		}
	}
	return out
}

func (m *multiRecorder) OnTrial(s TrialSample) {
	for _, r := range m.rs {
		r.OnTrial(s)
	}
}

func (m *multiRecorder) Close() error {
	var firstErr error
	for _, r := range m.rs {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// lockedRecorder serializes samples coming from parallel workers.
type lockedRecorder struct {
	mu sync.Mutex
	r  Recorder
}

func (l *lockedRecorder) OnTrial(s TrialSample) {
	l.mu.Lock()
	l.r.OnTrial(s)
	l.mu.Unlock()
}

func (l *lockedRecorder) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Close()
}

package sim

// EmitRun writes the headline metrics of res.
func (l *MetricsLogger) EmitRun(res RunResult) {
	l.Metric("scenario", res.Scenario)
	l.Metric("variant", res.Variant)
	l.Metric("seed", res.Seed)
	l.Metric("workers", res.Workers)

	l.Metric("packet_size", res.PacketSize)
	l.Metric("t_star", res.Capability)
	l.Metric("trials", res.Trials)

	l.Metric("mean_efficiency", res.MeanEfficiency)
	l.Metric("expected_efficiency", res.ExpectedEfficiency)
	l.Metric("mean_attempts", res.MeanAttempts)
	l.Metric("max_attempts", res.MaxAttempts)
	l.Metric("retransmissions", res.Retransmissions)
	if res.Variant == VariantMarkov {
		l.Metric("bad_state_fraction", res.BadStateFraction)
	}
}

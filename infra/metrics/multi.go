package metrics

import coremetrics "github.com/kilianp07/smartbin/core/metrics"

// MultiSink fans prediction events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// Combine returns NopSink, the single sink, or a MultiSink depending on how
// many sinks are given.
func Combine(sinks ...coremetrics.MetricsSink) coremetrics.MetricsSink {
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}
	case 1:
		return sinks[0]
	default:
		return NewMultiSink(sinks...)
	}
}

// RecordPrediction forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordPrediction(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordFailure forwards failures to the sinks that support them.
func (m *MultiSink) RecordFailure(ev coremetrics.FailureEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.FailureRecorder); ok {
			if err := rec.RecordFailure(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

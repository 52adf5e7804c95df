package metrics

// Package metrics defines the sinks that observe pickup predictions. Sinks
// like PromSink and InfluxSink live in infra/metrics and can be combined with
// NewMultiSink. Recording is best effort: callers log sink errors and carry on.

package metrics

import (
	"time"

	"github.com/kilianp07/smartbin/core/model"
)

// PredictionEvent is emitted once per successful pickup prediction.
type PredictionEvent struct {
	ID               string
	SelectedBin      model.BinKind
	WetRate          float64
	DryRate          float64
	WetHours         float64
	DryHours         float64
	FinalHours       float64
	Urgent           bool
	HolidayFactor    float64
	IsHoliday        bool
	WeatherCondition string
	Duration         time.Duration
	Time             time.Time
}

// MetricsSink records prediction events for observability purposes.
type MetricsSink interface {
	RecordPrediction(ev PredictionEvent) error
}

// FailureEvent describes a prediction request that did not produce a result.
type FailureEvent struct {
	Code string
	Time time.Time
}

// FailureRecorder is implemented by sinks able to count failed requests.
type FailureRecorder interface {
	RecordFailure(ev FailureEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordPrediction(PredictionEvent) error { return nil }

func (NopSink) RecordFailure(FailureEvent) error { return nil }

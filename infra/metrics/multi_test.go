package metrics

import (
	"errors"
	"testing"

	coremetrics "github.com/kilianp07/smartbin/core/metrics"
)

type recordSink struct {
	count int
	err   error
}

func (r *recordSink) RecordPrediction(coremetrics.PredictionEvent) error {
	r.count++
	return r.err
}

func (r *recordSink) RecordFailure(coremetrics.FailureEvent) error {
	r.count++
	return nil
}

type predictionOnly struct{ count int }

func (p *predictionOnly) RecordPrediction(coremetrics.PredictionEvent) error {
	p.count++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	p := &predictionOnly{}
	m := NewMultiSink(s1, s2, p)
	if err := m.RecordPrediction(coremetrics.PredictionEvent{}); err != nil {
		t.Fatalf("record prediction: %v", err)
	}
	if err := m.RecordFailure(coremetrics.FailureEvent{}); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if s1.count != 2 || s2.count != 2 || p.count != 1 {
		t.Fatalf("events not forwarded: %d %d %d", s1.count, s2.count, p.count)
	}
}

func TestMultiSinkStopsOnError(t *testing.T) {
	s1 := &recordSink{err: errors.New("down")}
	s2 := &recordSink{}
	if err := NewMultiSink(s1, s2).RecordPrediction(coremetrics.PredictionEvent{}); err == nil {
		t.Fatalf("expected error")
	}
	if s2.count != 0 {
		t.Fatalf("second sink should not be called")
	}
}

func TestCombine(t *testing.T) {
	if _, ok := Combine().(coremetrics.NopSink); !ok {
		t.Fatalf("expected NopSink")
	}
	s := &recordSink{}
	if Combine(s) != s {
		t.Fatalf("expected single sink")
	}
	if _, ok := Combine(s, s).(*MultiSink); !ok {
		t.Fatalf("expected MultiSink")
	}
}

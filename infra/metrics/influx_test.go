package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/smartbin/core/metrics"
	"github.com/kilianp07/smartbin/core/model"
)

func TestInfluxSink_RecordPrediction(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	defer sink.Close()
	now := time.Now()
	ev := coremetrics.PredictionEvent{
		ID:               "pred-1",
		SelectedBin:      model.BinWet,
		WetRate:          2.34567,
		DryRate:          0.01,
		WetHours:         1.5,
		DryHours:         9000,
		FinalHours:       1.5,
		Urgent:           true,
		HolidayFactor:    0.7,
		IsHoliday:        true,
		WeatherCondition: "rainy",
		Time:             now,
	}
	if err := sink.RecordPrediction(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("pickup_prediction").
		AddTag("selected_bin", "wet").
		AddTag("urgent", "true").
		AddTag("is_holiday", "true").
		AddTag("weather_condition", "rainy").
		AddField("prediction_id", "pred-1").
		AddField("wet_rate", 2.346).
		AddField("dry_rate", 0.01).
		AddField("wet_hours", 1.5).
		AddField("dry_hours", 9000.0).
		AddField("final_hours", 1.5).
		AddField("holiday_factor", 0.7).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if strings.TrimSpace(body) != expected {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestPredictionPointKeepsIDOutOfTags(t *testing.T) {
	p := PredictionPoint(coremetrics.PredictionEvent{ID: "3f1c", SelectedBin: model.BinDry, WeatherCondition: "normal", Time: time.Unix(0, 0)})
	for _, tag := range p.TagList() {
		if tag.Key == "prediction_id" {
			t.Fatalf("prediction_id must not be a tag")
		}
	}
	var found bool
	for _, f := range p.FieldList() {
		if f.Key == "prediction_id" {
			found = f.Value == "3f1c"
		}
	}
	if !found {
		t.Fatalf("prediction_id field missing: %v", p.FieldList())
	}
}

func TestInfluxSink_RecordFailure(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL+"/api/v2/write", "token", "org", "bucket")
	defer sink.Close()
	if err := sink.RecordFailure(coremetrics.FailureEvent{Code: "internal", Time: time.Now()}); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if !strings.HasPrefix(body, "pickup_prediction_failure,code=internal count=1i") {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	cfg := coremetrics.Config{
		InfluxEnabled: true,
		InfluxURL:     srv.URL + "/api/v2/write",
		InfluxToken:   "tok",
		InfluxOrg:     "org",
		InfluxBucket:  "bucket",
	}
	sink := NewInfluxSinkWithFallback(cfg)
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}

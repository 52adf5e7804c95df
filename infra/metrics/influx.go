package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/smartbin/core/metrics"
	"github.com/kilianp07/smartbin/infra/logger"
)

// InfluxSink writes prediction events to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// PredictionPoint converts an event to the line protocol point written by the sink.
func PredictionPoint(ev coremetrics.PredictionEvent) *write.Point {
	return write.NewPointWithMeasurement("pickup_prediction").
		AddTag("selected_bin", ev.SelectedBin.String()).
		AddTag("urgent", strconv.FormatBool(ev.Urgent)).
		AddTag("is_holiday", strconv.FormatBool(ev.IsHoliday)).
		AddTag("weather_condition", ev.WeatherCondition).
		AddField("prediction_id", ev.ID).
		AddField("wet_rate", round3(ev.WetRate)).
		AddField("dry_rate", round3(ev.DryRate)).
		AddField("wet_hours", round3(ev.WetHours)).
		AddField("dry_hours", round3(ev.DryHours)).
		AddField("final_hours", round3(ev.FinalHours)).
		AddField("holiday_factor", round3(ev.HolidayFactor)).
		SetTime(ev.Time)
}

// RecordPrediction writes the prediction as a line protocol point.
func (s *InfluxSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, PredictionPoint(ev))
}

// RecordFailure writes a failed request marker.
func (s *InfluxSink) RecordFailure(ev coremetrics.FailureEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("pickup_prediction_failure").
		AddTag("code", ev.Code).
		AddField("count", 1).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

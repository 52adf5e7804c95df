package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/kilianp07/smartbin/core/metrics"
	"github.com/kilianp07/smartbin/infra/logger"
)

// PromSink records prediction events in Prometheus metrics.
type PromSink struct {
	predictions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	hours       *prometheus.HistogramVec
	latency     prometheus.Histogram
	rates       *prometheus.GaugeVec
}

// hourBuckets spans urgent pickups up to a fortnight.
var hourBuckets = []float64{0.5, 1, 2, 4, 8, 12, 24, 48, 96, 168, 336}

// NewPromSink registers prediction metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	predictions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "smartbin_predictions_total",
		Help: "Total number of pickup predictions",
	}, []string{"selected_bin", "urgent", "holiday"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "smartbin_prediction_failures_total",
		Help: "Total number of failed prediction requests",
	}, []string{"code"})
	hours := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "smartbin_hours_remaining",
		Help:    "Predicted hours until a compartment reaches its threshold",
		Buckets: hourBuckets,
	}, []string{"bin"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "smartbin_prediction_duration_seconds",
		Help:    "Time spent computing a prediction",
		Buckets: prometheus.DefBuckets,
	})
	rates := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "smartbin_predicted_fill_rate",
		Help: "Most recent predicted fill rate in percent per hour",
	}, []string{"bin"})

	var err error
	if predictions, err = register(reg, predictions); err != nil {
		return nil, err
	}
	if failures, err = register(reg, failures); err != nil {
		return nil, err
	}
	if hours, err = register(reg, hours); err != nil {
		return nil, err
	}
	if latency, err = register(reg, latency); err != nil {
		return nil, err
	}
	if rates, err = register(reg, rates); err != nil {
		return nil, err
	}
	return &PromSink{predictions: predictions, failures: failures, hours: hours, latency: latency, rates: rates}, nil
}

// register reuses an already registered collector of the same type.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordPrediction updates counters, histograms and gauges for one prediction.
func (s *PromSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	s.predictions.WithLabelValues(ev.SelectedBin.String(), strconv.FormatBool(ev.Urgent), strconv.FormatBool(ev.IsHoliday)).Inc()
	s.hours.WithLabelValues("wet").Observe(ev.WetHours)
	s.hours.WithLabelValues("dry").Observe(ev.DryHours)
	s.rates.WithLabelValues("wet").Set(ev.WetRate)
	s.rates.WithLabelValues("dry").Set(ev.DryRate)
	s.latency.Observe(ev.Duration.Seconds())
	return nil
}

// RecordFailure counts a failed request by error code.
func (s *PromSink) RecordFailure(ev coremetrics.FailureEvent) error {
	s.failures.WithLabelValues(ev.Code).Inc()
	return nil
}

// StartPromServer starts an HTTP server exposing Prometheus metrics on the given address.
// The server runs until the provided context is canceled.
// A dedicated ServeMux is used to avoid interfering with other handlers.
func StartPromServer(ctx context.Context, addr string) error {
	return startPromServer(ctx, addr, logger.New("prom-server"))
}

func startPromServer(ctx context.Context, addr string, log logger.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("prom server shutdown: %v", err)
		}
		cancel()
	}()
	log.Infof("serving metrics on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Errorf("prom server: %v", err)
		return err
	}
	return nil
}

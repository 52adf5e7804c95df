package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kilianp07/smartbin/api/predict"
	"github.com/kilianp07/smartbin/app/plugins"
	"github.com/kilianp07/smartbin/config"
	"github.com/kilianp07/smartbin/core/alert"
	"github.com/kilianp07/smartbin/core/holiday"
	coremetrics "github.com/kilianp07/smartbin/core/metrics"
	"github.com/kilianp07/smartbin/core/pickup"
	"github.com/kilianp07/smartbin/infra/logger"
	"github.com/kilianp07/smartbin/infra/metrics"
	"github.com/kilianp07/smartbin/infra/mqtt"
)

// Service owns the predictor and the HTTP server exposing it.
type Service struct {
	Predictor *pickup.Predictor

	cfg       *config.Config
	server    *http.Server
	log       logger.Logger
	publisher *mqtt.PahoPublisher
	sinks     []coremetrics.MetricsSink
}

// NewPredictor loads both models and the holiday table described by cfg.
func NewPredictor(cfg *config.Config, opts ...pickup.Option) (*pickup.Predictor, error) {
	wet, err := plugins.LoadModel(cfg.Models.Kind, cfg.Models.WetPath)
	if err != nil {
		return nil, fmt.Errorf("wet model: %w", err)
	}
	dry, err := plugins.LoadModel(cfg.Models.Kind, cfg.Models.DryPath)
	if err != nil {
		return nil, fmt.Errorf("dry model: %w", err)
	}
	resolver, err := NewHolidayResolver(cfg.Calendar)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Calendar.Location()
	if err != nil {
		return nil, err
	}
	base := []pickup.Option{pickup.WithHolidays(resolver), pickup.WithLocation(loc)}
	return pickup.NewPredictor(wet, dry, cfg.Pickup, append(base, opts...)...)
}

// NewHolidayResolver returns a resolver over the bundled India table or
// the configured file, restricted to the configured years.
func NewHolidayResolver(cfg config.CalendarConfig) (*holiday.Resolver, error) {
	table := holiday.India()
	if cfg.HolidaysFile != "" {
		t, err := holiday.LoadTable(cfg.HolidaysFile)
		if err != nil {
			return nil, fmt.Errorf("holidays: %w", err)
		}
		table = t
	}
	if len(cfg.Years) > 0 {
		table = table.Filter(cfg.Years...)
	}
	return holiday.NewResolver(table, nil), nil
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logger.SetLevel(cfg.Logging.Level)
	logg := logger.New("service")

	sinks, err := plugins.EnabledSinks(cfg.Metrics)
	if err != nil {
		return nil, err
	}
	svc := &Service{cfg: cfg, log: logg, sinks: sinks}

	var publisher alert.Publisher = alert.NopPublisher{}
	if cfg.MQTT.Enabled {
		p, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			svc.closeSinks()
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.publisher = p
		publisher = p
	}

	pred, err := NewPredictor(cfg,
		pickup.WithMetrics(metrics.Combine(sinks...)),
		pickup.WithAlerts(publisher),
		pickup.WithLogger(logger.New("predictor")),
	)
	if err != nil {
		_ = svc.Close()
		return nil, err
	}
	svc.Predictor = pred

	opts := predict.RouterOptions{Logger: logger.New("api")}
	if cfg.Metrics.PrometheusEnabled && cfg.Metrics.PrometheusAddr == "" {
		opts.Metrics = promhttp.Handler()
	}
	svc.server = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           predict.NewRouter(pred, opts),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return svc, nil
}

// Handler returns the HTTP handler serving the API.
func (s *Service) Handler() http.Handler { return s.server.Handler }

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled && s.cfg.Metrics.PrometheusAddr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	timeout := time.Duration(s.cfg.Server.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.publisher != nil {
		s.publisher.Disconnect()
	}
	s.closeSinks()
	return nil
}

func (s *Service) closeSinks() {
	for _, sink := range s.sinks {
		if c, ok := sink.(interface{ Close() }); ok {
			c.Close()
		}
	}
}

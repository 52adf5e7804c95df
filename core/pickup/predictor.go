// Package pickup turns sensor readings into a pickup recommendation.
package pickup

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/smartbin/core/alert"
	"github.com/kilianp07/smartbin/core/features"
	"github.com/kilianp07/smartbin/core/logger"
	"github.com/kilianp07/smartbin/core/metrics"
	"github.com/kilianp07/smartbin/core/model"
	"github.com/kilianp07/smartbin/core/prediction"
)

// Predictor holds the read-only state shared by every request: both rate
// models, the holiday resolver and the pickup policy. It is safe for
// concurrent use once constructed.
type Predictor struct {
	wet      prediction.RatePredictor
	dry      prediction.RatePredictor
	cfg      Config
	holidays features.HolidayResolver
	loc      *time.Location
	now      func() time.Time
	newID    func() string
	sink     metrics.MetricsSink
	alerts   alert.Publisher
	log      logger.Logger
}

// Option customises a Predictor at construction time.
type Option func(*Predictor)

// WithHolidays sets the holiday resolver.
func WithHolidays(r features.HolidayResolver) Option { return func(p *Predictor) { p.holidays = r } }

// WithLocation sets the civil time zone used for calendar features.
func WithLocation(loc *time.Location) Option { return func(p *Predictor) { p.loc = loc } }

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option { return func(p *Predictor) { p.now = now } }

// WithIDGenerator overrides the prediction ID source.
func WithIDGenerator(f func() string) Option { return func(p *Predictor) { p.newID = f } }

// WithMetrics sets the sink receiving prediction events.
func WithMetrics(s metrics.MetricsSink) Option { return func(p *Predictor) { p.sink = s } }

// WithAlerts sets the publisher used for urgent pickups.
func WithAlerts(a alert.Publisher) Option { return func(p *Predictor) { p.alerts = a } }

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option { return func(p *Predictor) { p.log = l } }

// NewPredictor creates a Predictor. Both models are required.
func NewPredictor(wet, dry prediction.RatePredictor, cfg Config, opts ...Option) (*Predictor, error) {
	if wet == nil || dry == nil {
		return nil, fmt.Errorf("pickup: wet and dry models are required")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pickup: %w", err)
	}
	p := &Predictor{
		wet:    wet,
		dry:    dry,
		cfg:    cfg,
		loc:    time.UTC,
		now:    time.Now,
		newID:  uuid.NewString,
		sink:   metrics.NopSink{},
		alerts: alert.NopPublisher{},
		log:    logger.NopLogger{},
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Config returns the pickup policy in use.
func (p *Predictor) Config() Config { return p.cfg }

// Calendar derives the calendar context for the current time.
func (p *Predictor) Calendar() model.CalendarContext {
	return features.NewCalendarContext(p.now(), p.loc, p.holidays)
}

// Predict evaluates req against both models. Failures are returned as *Error.
func (p *Predictor) Predict(ctx context.Context, req model.PredictionRequest) (model.PredictionResult, error) {
	start := time.Now()
	cc := p.Calendar()
	fv := features.Build(req, cc)

	wetRaw, err := p.wet.PredictRate(fv)
	if err != nil {
		p.RecordFailure(CodeInternal)
		return model.PredictionResult{}, Internalf("wet model: %v", err)
	}
	dryRaw, err := p.dry.PredictRate(fv)
	if err != nil {
		p.RecordFailure(CodeInternal)
		return model.PredictionResult{}, Internalf("dry model: %v", err)
	}

	d := p.cfg.Decide(fv.WetLevel, fv.DryLevel, wetRaw, dryRaw)
	if err := checkFinite(d); err != nil {
		p.RecordFailure(CodeInternal)
		return model.PredictionResult{}, err
	}
	res := model.PredictionResult{
		ID:                  p.newID(),
		SelectedBin:         d.Selected,
		Wet:                 d.Wet,
		Dry:                 d.Dry,
		FinalHoursRemaining: d.FinalHours,
		NextPickup:          PickupTime(cc.Now, d.FinalHours),
		PickupImmediately:   d.Urgent,
		Holiday:             cc.Holiday,
		Now:                 cc.Now,
	}

	p.log.Infow("pickup predicted", map[string]any{
		"prediction_id": res.ID,
		"selected_bin":  res.SelectedBin.String(),
		"final_hours":   res.FinalHoursRemaining,
		"urgent":        res.PickupImmediately,
		"holiday":       cc.Holiday.IsHoliday,
	})
	p.record(res, fv, time.Since(start))
	if res.PickupImmediately {
		p.publishAlert(ctx, res)
	}
	return res, nil
}

// checkFinite rejects decisions that cannot be rendered as JSON numbers.
func checkFinite(d Decision) error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"wet rate", d.Wet.PredictedRate},
		{"dry rate", d.Dry.PredictedRate},
		{"wet hours remaining", d.Wet.HoursRemaining},
		{"dry hours remaining", d.Dry.HoursRemaining},
	} {
		if math.IsInf(v.val, 0) || math.IsNaN(v.val) {
			return Internalf("%s is not finite", v.name)
		}
	}
	return nil
}

func (p *Predictor) record(res model.PredictionResult, fv model.FeatureVector, dur time.Duration) {
	ev := metrics.PredictionEvent{
		ID:               res.ID,
		SelectedBin:      res.SelectedBin,
		WetRate:          res.Wet.PredictedRate,
		DryRate:          res.Dry.PredictedRate,
		WetHours:         res.Wet.HoursRemaining,
		DryHours:         res.Dry.HoursRemaining,
		FinalHours:       res.FinalHoursRemaining,
		Urgent:           res.PickupImmediately,
		HolidayFactor:    res.Holiday.Factor,
		IsHoliday:        res.Holiday.IsHoliday,
		WeatherCondition: fv.WeatherCondition,
		Duration:         dur,
		Time:             res.Now,
	}
	if err := p.sink.RecordPrediction(ev); err != nil {
		p.log.Warnf("record prediction %s: %v", res.ID, err)
	}
}

// RecordFailure counts a failed prediction request.
func (p *Predictor) RecordFailure(code Code) {
	rec, ok := p.sink.(metrics.FailureRecorder)
	if !ok {
		return
	}
	if err := rec.RecordFailure(metrics.FailureEvent{Code: string(code), Time: p.now()}); err != nil {
		p.log.Warnf("record failure: %v", err)
	}
}

func (p *Predictor) publishAlert(ctx context.Context, res model.PredictionResult) {
	a := alert.PickupAlert{
		AlertID:             p.newID(),
		PredictionID:        res.ID,
		SelectedBin:         res.SelectedBin.String(),
		FinalHoursRemaining: res.FinalHoursRemaining,
		NextPickupDatetime:  res.NextPickupString(),
		Timestamp:           res.Now,
	}
	if err := p.alerts.PublishPickupAlert(ctx, a); err != nil {
		p.log.Errorf("publish pickup alert %s: %v", a.AlertID, err)
	}
}

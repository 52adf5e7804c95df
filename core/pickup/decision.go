package pickup

import (
	"fmt"
	"math"
	"time"

	"github.com/kilianp07/smartbin/core/model"
	"github.com/kilianp07/smartbin/core/prediction"
)

// Config holds the pickup policy.
type Config struct {
	WetThreshold float64 `json:"wet_threshold"`
	DryThreshold float64 `json:"dry_threshold"`
	// AlertLimitHours is a pointer so an explicit 0 (alert only when full)
	// survives SetDefaults.
	AlertLimitHours *float64 `json:"alert_limit_hours"`
	MinRate         float64  `json:"min_rate"`
}

// DefaultConfig returns the deployed policy: both bins are emptied at 90%
// and anything due within two hours is urgent.
func DefaultConfig() Config {
	return Config{
		WetThreshold:    90,
		DryThreshold:    90,
		AlertLimitHours: Hours(2),
		MinRate:         prediction.MinRate,
	}
}

// SetDefaults fills unset values from DefaultConfig. Zero thresholds and
// rates are never valid, so zero marks them unset.
func (c *Config) SetDefaults() {
	d := DefaultConfig()
	if c.WetThreshold == 0 {
		c.WetThreshold = d.WetThreshold
	}
	if c.DryThreshold == 0 {
		c.DryThreshold = d.DryThreshold
	}
	if c.AlertLimitHours == nil {
		c.AlertLimitHours = d.AlertLimitHours
	}
	if c.MinRate == 0 {
		c.MinRate = d.MinRate
	}
}

// Validate rejects policies that would divide by zero or never alert.
func (c Config) Validate() error {
	if c.MinRate <= 0 {
		return fmt.Errorf("min_rate must be positive")
	}
	if c.WetThreshold <= 0 || c.DryThreshold <= 0 {
		return fmt.Errorf("thresholds must be positive")
	}
	if c.AlertLimitHours != nil && *c.AlertLimitHours < 0 {
		return fmt.Errorf("alert_limit_hours must not be negative")
	}
	return nil
}

// Hours returns a pointer to h for Config.AlertLimitHours.
func Hours(h float64) *float64 { return &h }

func (c Config) alertLimit() float64 {
	if c.AlertLimitHours == nil {
		return *DefaultConfig().AlertLimitHours
	}
	return *c.AlertLimitHours
}

// Decision is the outcome of comparing both compartments.
type Decision struct {
	Selected   model.BinKind
	Wet        model.BinForecast
	Dry        model.BinForecast
	FinalHours float64
	Urgent     bool
}

// Decide floors the raw model rates, computes hours to threshold for each
// compartment and picks the one that fills first. Wet wins ties.
func (c Config) Decide(wetLevel, dryLevel, wetRaw, dryRaw float64) Decision {
	wetRate := prediction.Floor(wetRaw, c.MinRate)
	dryRate := prediction.Floor(dryRaw, c.MinRate)
	d := Decision{
		Wet: model.BinForecast{PredictedRate: wetRate, HoursRemaining: HoursRemaining(c.WetThreshold, wetLevel, wetRate)},
		Dry: model.BinForecast{PredictedRate: dryRate, HoursRemaining: HoursRemaining(c.DryThreshold, dryLevel, dryRate)},
	}
	if d.Wet.HoursRemaining <= d.Dry.HoursRemaining {
		d.Selected, d.FinalHours = model.BinWet, d.Wet.HoursRemaining
	} else {
		d.Selected, d.FinalHours = model.BinDry, d.Dry.HoursRemaining
	}
	d.Urgent = d.FinalHours <= c.alertLimit()
	return d
}

// HoursRemaining returns the hours until level reaches threshold at rate.
// The result is never negative.
func HoursRemaining(threshold, level, rate float64) float64 {
	h := (threshold - level) / rate
	if math.IsNaN(h) || h < 0 {
		return 0
	}
	return h
}

// PickupTime adds hours to now, saturating at the largest Duration.
func PickupTime(now time.Time, hours float64) time.Time {
	d := hours * float64(time.Hour)
	if d >= float64(math.MaxInt64) {
		return now.Add(time.Duration(math.MaxInt64))
	}
	return now.Add(time.Duration(d))
}

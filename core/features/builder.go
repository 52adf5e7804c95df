// Package features derives calendar context and assembles the feature
// vector consumed by the fill-rate models.
package features

import (
	"time"

	"github.com/kilianp07/smartbin/core/model"
)

// HolidayResolver returns the holiday factor for a point in time.
type HolidayResolver interface {
	Resolve(t time.Time) model.HolidayFactor
}

// NewCalendarContext converts now into loc and derives the calendar features.
// A nil resolver yields no holidays; a nil loc keeps now's location.
func NewCalendarContext(now time.Time, loc *time.Location, res HolidayResolver) model.CalendarContext {
	if loc != nil {
		now = now.In(loc)
	}
	dow := mondayIndex(now.Weekday())
	cc := model.CalendarContext{
		Now:       now,
		Hour:      now.Hour(),
		DayOfWeek: dow,
		IsWeekend: dow >= 5,
	}
	if res != nil {
		cc.Holiday = res.Resolve(now)
	}
	return cc
}

// mondayIndex maps time.Weekday (Sunday=0) onto Monday=0 .. Sunday=6.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// Build combines a request with its calendar context.
func Build(req model.PredictionRequest, cc model.CalendarContext) model.FeatureVector {
	req = req.WithDefaults()
	return model.FeatureVector{
		HourOfDay:                cc.Hour,
		DayOfWeek:                cc.DayOfWeek,
		IsWeekend:                boolToInt(cc.IsWeekend),
		HolidayFactor:            cc.Holiday.Factor,
		IsHoliday:                boolToInt(cc.Holiday.IsHoliday),
		WeatherCondition:         req.WeatherCondition,
		WetLevel:                 req.WetLevel,
		DryLevel:                 req.DryLevel,
		AvgFillRateLast3h:        req.AvgFillRateLast3h,
		PreviousDaySameTimeLevel: req.PreviousDaySameTimeLevel,
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

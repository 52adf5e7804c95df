package model

import "fmt"

// Feature names in the order the fill-rate models were trained on.
const (
	FeatureHourOfDay                = "hour_of_day"
	FeatureDayOfWeek                = "day_of_week"
	FeatureIsWeekend                = "is_weekend"
	FeatureHolidayFactor            = "holiday_factor"
	FeatureIsHoliday                = "is_holiday"
	FeatureWeatherCondition         = "weather_condition"
	FeatureWetLevel                 = "wet_level"
	FeatureDryLevel                 = "dry_level"
	FeatureAvgFillRateLast3h        = "avg_fill_rate_last_3h"
	FeaturePreviousDaySameTimeLevel = "previous_day_same_time_level"
)

var featureOrder = []string{
	FeatureHourOfDay,
	FeatureDayOfWeek,
	FeatureIsWeekend,
	FeatureHolidayFactor,
	FeatureIsHoliday,
	FeatureWeatherCondition,
	FeatureWetLevel,
	FeatureDryLevel,
	FeatureAvgFillRateLast3h,
	FeaturePreviousDaySameTimeLevel,
}

// FeatureNames returns the model feature contract in column order.
func FeatureNames() []string {
	out := make([]string, len(featureOrder))
	copy(out, featureOrder)
	return out
}

// IsCategoricalFeature reports whether the named feature carries a string value.
func IsCategoricalFeature(name string) bool {
	return name == FeatureWeatherCondition
}

// IsKnownFeature reports whether name is part of the feature contract.
func IsKnownFeature(name string) bool {
	for _, f := range featureOrder {
		if f == name {
			return true
		}
	}
	return false
}

// FeatureVector is the single-row record passed to both rate models.
type FeatureVector struct {
	HourOfDay                int
	DayOfWeek                int
	IsWeekend                int
	HolidayFactor            float64
	IsHoliday                int
	WeatherCondition         string
	WetLevel                 float64
	DryLevel                 float64
	AvgFillRateLast3h        float64
	PreviousDaySameTimeLevel float64
}

// Numeric returns the value of a numeric feature.
func (v FeatureVector) Numeric(name string) (float64, error) {
	switch name {
	case FeatureHourOfDay:
		return float64(v.HourOfDay), nil
	case FeatureDayOfWeek:
		return float64(v.DayOfWeek), nil
	case FeatureIsWeekend:
		return float64(v.IsWeekend), nil
	case FeatureHolidayFactor:
		return v.HolidayFactor, nil
	case FeatureIsHoliday:
		return float64(v.IsHoliday), nil
	case FeatureWetLevel:
		return v.WetLevel, nil
	case FeatureDryLevel:
		return v.DryLevel, nil
	case FeatureAvgFillRateLast3h:
		return v.AvgFillRateLast3h, nil
	case FeaturePreviousDaySameTimeLevel:
		return v.PreviousDaySameTimeLevel, nil
	default:
		return 0, fmt.Errorf("feature %q is not numeric", name)
	}
}

// Categorical returns the value of a categorical feature.
func (v FeatureVector) Categorical(name string) (string, error) {
	if name == FeatureWeatherCondition {
		return v.WeatherCondition, nil
	}
	return "", fmt.Errorf("feature %q is not categorical", name)
}

// Record returns the vector as an ordered list of name/value pairs.
func (v FeatureVector) Record() []FeatureValue {
	out := make([]FeatureValue, 0, len(featureOrder))
	for _, name := range featureOrder {
		if IsCategoricalFeature(name) {
			s, _ := v.Categorical(name)
			out = append(out, FeatureValue{Name: name, Value: s})
			continue
		}
		f, _ := v.Numeric(name)
		out = append(out, FeatureValue{Name: name, Value: f})
	}
	return out
}

// FeatureValue is one column of a FeatureVector.
type FeatureValue struct {
	Name  string
	Value any
}

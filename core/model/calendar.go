package model

import "time"

// HolidayFactor describes how strongly a date is expected to deviate from a
// normal day in terms of waste generation.
type HolidayFactor struct {
	Factor    float64
	IsHoliday bool
	// Name is nil when the date is not a holiday.
	Name *string
}

// NoHoliday is the factor returned for ordinary days.
var NoHoliday = HolidayFactor{}

// CalendarContext holds the calendar features derived from the current time.
type CalendarContext struct {
	Now       time.Time
	Hour      int
	DayOfWeek int // 0=Monday .. 6=Sunday
	IsWeekend bool
	Holiday   HolidayFactor
}

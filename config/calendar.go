package config

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// CalendarConfig selects the civil time zone and holiday table.
type CalendarConfig struct {
	Timezone string `json:"timezone"`
	// HolidaysFile replaces the bundled India table when set.
	HolidaysFile string `json:"holidays_file"`
	// Years restricts the table to the listed years. Empty keeps all.
	Years []int `json:"years"`
}

// SetDefaults selects Indian Standard Time.
func (c *CalendarConfig) SetDefaults() {
	if c.Timezone == "" {
		c.Timezone = "Asia/Kolkata"
	}
}

// Validate checks that the time zone exists.
func (c CalendarConfig) Validate() error {
	_, err := c.Location()
	return err
}

// Location loads the configured time zone.
func (c CalendarConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

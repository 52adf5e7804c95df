// Package alert defines how urgent pickups are announced to the collection
// fleet.
package alert

import (
	"context"
	"errors"
	"time"
)

// ErrPublishFailed is returned when an alert could not be delivered after
// all retries.
var ErrPublishFailed = errors.New("alert publish failed")

// PickupAlert announces a compartment that must be emptied soon.
type PickupAlert struct {
	AlertID             string    `json:"alert_id"`
	PredictionID        string    `json:"prediction_id"`
	SelectedBin         string    `json:"selected_bin"`
	FinalHoursRemaining float64   `json:"final_hours_remaining"`
	NextPickupDatetime  string    `json:"next_pickup_datetime"`
	Timestamp           time.Time `json:"timestamp"`
}

// Publisher delivers pickup alerts.
type Publisher interface {
	PublishPickupAlert(ctx context.Context, a PickupAlert) error
}

// NopPublisher drops every alert.
type NopPublisher struct{}

func (NopPublisher) PublishPickupAlert(context.Context, PickupAlert) error { return nil }

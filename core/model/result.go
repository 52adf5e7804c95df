package model

import "time"

// Wire formats used when rendering a PredictionResult.
const (
	PickupTimeLayout  = "2006-01-02 15:04:05"
	CurrentDateLayout = "02-01-2006"
	CurrentTimeLayout = "15:04:05"
)

// BinForecast is the per-compartment outcome of a prediction.
type BinForecast struct {
	PredictedRate  float64 // percent per hour, already floored
	HoursRemaining float64
}

// PredictionResult is the pickup recommendation for a single request.
type PredictionResult struct {
	ID                  string
	SelectedBin         BinKind
	Wet                 BinForecast
	Dry                 BinForecast
	FinalHoursRemaining float64
	NextPickup          time.Time
	PickupImmediately   bool
	Holiday             HolidayFactor
	Now                 time.Time
}

// CurrentDate renders the request date as DD-MM-YYYY.
func (r PredictionResult) CurrentDate() string { return r.Now.Format(CurrentDateLayout) }

// CurrentTime renders the request time as HH:MM:SS.
func (r PredictionResult) CurrentTime() string { return r.Now.Format(CurrentTimeLayout) }

// DayName returns the English weekday name of the request time.
func (r PredictionResult) DayName() string { return r.Now.Weekday().String() }

// NextPickupString renders the recommended pickup time.
func (r PredictionResult) NextPickupString() string { return r.NextPickup.Format(PickupTimeLayout) }

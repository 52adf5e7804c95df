package prediction

import (
	"math"

	"github.com/kilianp07/smartbin/core/model"
)

// MinRate is the smallest fill rate, in percent per hour, used downstream.
const MinRate = 0.01

// RatePredictor estimates a compartment fill rate in percent per hour.
type RatePredictor interface {
	PredictRate(fv model.FeatureVector) (float64, error)
}

// Floor clamps a raw model output to at least min. NaN maps to min.
func Floor(rate, min float64) float64 {
	if math.IsNaN(rate) || rate < min {
		return min
	}
	return rate
}

package prediction

import "github.com/kilianp07/smartbin/core/model"

// MockPredictor returns a fixed rate or error.
type MockPredictor struct {
	Rate float64
	Err  error
	// Fn, when set, takes precedence over Rate.
	Fn func(model.FeatureVector) float64

	Calls []model.FeatureVector
}

// PredictRate records the call and returns the configured value.
func (m *MockPredictor) PredictRate(fv model.FeatureVector) (float64, error) {
	m.Calls = append(m.Calls, fv)
	if m.Err != nil {
		return 0, m.Err
	}
	if m.Fn != nil {
		return m.Fn(fv), nil
	}
	return m.Rate, nil
}

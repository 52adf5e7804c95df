package model

// DefaultWeather is used when a request omits weather_condition.
const DefaultWeather = "normal"

// PredictionRequest carries the sensor readings sent by a bin.
type PredictionRequest struct {
	WetLevel                 float64 // fill level of the wet compartment, 0-100
	DryLevel                 float64 // fill level of the dry compartment, 0-100
	AvgFillRateLast3h        float64 // percent per hour observed over the last three hours
	PreviousDaySameTimeLevel float64
	WeatherCondition         string
}

// WithDefaults returns a copy with the weather tag defaulted.
func (r PredictionRequest) WithDefaults() PredictionRequest {
	if r.WeatherCondition == "" {
		r.WeatherCondition = DefaultWeather
	}
	return r
}

package predict

import "github.com/kilianp07/smartbin/core/model"

// Response is the JSON body returned by POST /predict.
type Response struct {
	SelectedBinForPickup      string  `json:"selected_bin_for_pickup"`
	WetPredictedRate          float64 `json:"wet_predicted_rate"`
	DryPredictedRate          float64 `json:"dry_predicted_rate"`
	WetHoursRemaining         float64 `json:"wet_hours_remaining"`
	DryHoursRemaining         float64 `json:"dry_hours_remaining"`
	FinalHoursRemaining       float64 `json:"final_hours_remaining"`
	NextPickupDatetime        string  `json:"next_pickup_datetime"`
	PickupRequiredImmediately bool    `json:"pickup_required_immediately"`
	IsHolidayToday            bool    `json:"is_holiday_today"`
	HolidayName               *string `json:"holiday_name"`
	HolidayFactorUsed         float64 `json:"holiday_factor_used"`
	CurrentDate               string  `json:"current_date"`
	CurrentTime               string  `json:"current_time"`
	DayName                   string  `json:"day_name"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewResponse renders a prediction result.
func NewResponse(r model.PredictionResult) Response {
	var name *string
	if r.Holiday.Name != nil && *r.Holiday.Name != "" {
		n := *r.Holiday.Name
		name = &n
	}
	return Response{
		SelectedBinForPickup:      r.SelectedBin.String(),
		WetPredictedRate:          r.Wet.PredictedRate,
		DryPredictedRate:          r.Dry.PredictedRate,
		WetHoursRemaining:         r.Wet.HoursRemaining,
		DryHoursRemaining:         r.Dry.HoursRemaining,
		FinalHoursRemaining:       r.FinalHoursRemaining,
		NextPickupDatetime:        r.NextPickupString(),
		PickupRequiredImmediately: r.PickupImmediately,
		IsHolidayToday:            r.Holiday.IsHoliday,
		HolidayName:               name,
		HolidayFactorUsed:         r.Holiday.Factor,
		CurrentDate:               r.CurrentDate(),
		CurrentTime:               r.CurrentTime(),
		DayName:                   r.DayName(),
	}
}

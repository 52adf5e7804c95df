package predict

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/kilianp07/smartbin/core/model"
	"github.com/kilianp07/smartbin/core/pickup"
)

// ErrInvalidJSON is reported for missing, malformed or non-object bodies.
var ErrInvalidJSON = errors.New("Invalid JSON")

// maxBodyBytes bounds the size of a prediction request.
const maxBodyBytes = 1 << 20

// DecodeRequest parses a prediction body. Missing fields keep their
// defaults. A body that is not a JSON object yields a CodeInvalidInput
// error; a field that cannot be converted yields CodeInternal.
func DecodeRequest(r io.Reader) (model.PredictionRequest, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBodyBytes+1))
	if err != nil || len(data) > maxBodyBytes || len(bytes.TrimSpace(data)) == 0 {
		return model.PredictionRequest{}, &pickup.Error{Code: pickup.CodeInvalidInput, Message: ErrInvalidJSON.Error(), Err: ErrInvalidJSON}
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil || dec.More() {
		return model.PredictionRequest{}, &pickup.Error{Code: pickup.CodeInvalidInput, Message: ErrInvalidJSON.Error(), Err: ErrInvalidJSON}
	}
	fields, ok := raw.(map[string]any)
	if !ok {
		return model.PredictionRequest{}, &pickup.Error{Code: pickup.CodeInvalidInput, Message: ErrInvalidJSON.Error(), Err: ErrInvalidJSON}
	}

	req := model.PredictionRequest{WeatherCondition: model.DefaultWeather}
	numeric := []struct {
		name string
		dst  *float64
	}{
		{model.FeatureWetLevel, &req.WetLevel},
		{model.FeatureDryLevel, &req.DryLevel},
		{model.FeatureAvgFillRateLast3h, &req.AvgFillRateLast3h},
		{model.FeaturePreviousDaySameTimeLevel, &req.PreviousDaySameTimeLevel},
	}
	for _, f := range numeric {
		v, ok := fields[f.name]
		if !ok {
			continue
		}
		n, err := toFloat(v)
		if err != nil {
			return model.PredictionRequest{}, pickup.Internalf("%s: %v", f.name, err)
		}
		*f.dst = n
	}
	if v, ok := fields[model.FeatureWeatherCondition]; ok {
		s, err := toText(v)
		if err != nil {
			return model.PredictionRequest{}, pickup.Internalf("%s: %v", model.FeatureWeatherCondition, err)
		}
		if s != "" {
			req.WeatherCondition = s
		}
	}
	return req, nil
}

// toFloat accepts JSON numbers and numeric strings.
func toFloat(v any) (float64, error) {
	var f float64
	switch t := v.(type) {
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, fmt.Errorf("could not convert %s to float", t)
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("could not convert string to float: %q", t)
		}
		f = n
	case nil:
		return 0, fmt.Errorf("expected a number, got null")
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("value must be finite")
	}
	return f, nil
}

// toText renders a scalar as text. Null selects the default.
func toText(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected a string, got %T", v)
	}
}

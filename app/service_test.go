package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/smartbin/config"
	"github.com/kilianp07/smartbin/core/model"
)

const flatModel = `{
  "name": "flat",
  "target": "fill_rate",
  "intercept": 5,
  "numeric": [{"feature": "wet_level", "mean": 0, "scale": 1, "coef": 0}],
  "categorical": [{"feature": "weather_condition", "categories": {"rainy": 1}}]
}`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	wet := filepath.Join(dir, "wet.json")
	dry := filepath.Join(dir, "dry.json")
	require.NoError(t, os.WriteFile(wet, []byte(flatModel), 0o600))
	require.NoError(t, os.WriteFile(dry, []byte(flatModel), 0o600))
	cfg := &config.Config{}
	cfg.Models.WetPath = wet
	cfg.Models.DryPath = dry
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestNewPredictorFromConfig(t *testing.T) {
	cfg := testConfig(t)
	p, err := NewPredictor(cfg)
	require.NoError(t, err)
	res, err := p.Predict(context.Background(), pickupRequest(50, 10))
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.Wet.PredictedRate)
	assert.InDelta(t, 8.0, res.Wet.HoursRemaining, 1e-9)
	assert.Equal(t, "Asia/Kolkata", res.Now.Location().String())
}

func TestNewPredictorMissingModel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Models.DryPath = filepath.Join(t.TempDir(), "absent.json")
	_, err := NewPredictor(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dry model")
}

func TestNewHolidayResolver(t *testing.T) {
	r, err := NewHolidayResolver(config.CalendarConfig{})
	require.NoError(t, err)
	hf := r.Resolve(time.Date(2025, 10, 2, 12, 0, 0, 0, time.UTC))
	assert.True(t, hf.IsHoliday)
	assert.Equal(t, 0.3, hf.Factor)

	r, err = NewHolidayResolver(config.CalendarConfig{Years: []int{2026}})
	require.NoError(t, err)
	assert.False(t, r.Resolve(time.Date(2025, 10, 2, 12, 0, 0, 0, time.UTC)).IsHoliday)

	path := filepath.Join(t.TempDir(), "h.yaml")
	require.NoError(t, os.WriteFile(path, []byte("\"2026-03-01\": \"Founders Day\"\n"), 0o600))
	r, err = NewHolidayResolver(config.CalendarConfig{HolidaysFile: path})
	require.NoError(t, err)
	hf = r.Resolve(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	assert.True(t, hf.IsHoliday)
	assert.Equal(t, 0.25, hf.Factor)

	_, err = NewHolidayResolver(config.CalendarConfig{HolidaysFile: filepath.Join(t.TempDir(), "none.yaml")})
	require.Error(t, err)
}

func TestServiceHandler(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.PrometheusEnabled = true
	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{"wet_level":95,"dry_level":10}`))
	svc.Handler().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "wet", body["selected_bin_for_pickup"])
	assert.Equal(t, 0.0, body["final_hours_remaining"])
	assert.Equal(t, true, body["pickup_required_immediately"])

	rr = httptest.NewRecorder()
	svc.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "smartbin_predictions_total")
}

func TestServiceRunShutsDown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	cfg := testConfig(t)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = port
	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	url := "http://" + cfg.Server.Addr() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop")
	}
}

func TestNewRejectsBadMQTT(t *testing.T) {
	cfg := testConfig(t)
	cfg.MQTT.Enabled = true
	cfg.MQTT.Broker = "tcp://127.0.0.1:1"
	cfg.MQTT.MaxRetries = 1
	_, err := New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mqtt publisher")
}

func pickupRequest(wet, dry float64) model.PredictionRequest {
	return model.PredictionRequest{WetLevel: wet, DryLevel: dry}
}

package metrics

import "fmt"

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool `json:"prometheus_enabled"`
	// PrometheusAddr serves /metrics on a dedicated listener when set;
	// otherwise metrics share the API server.
	PrometheusAddr string `json:"prometheus_addr"`
	InfluxEnabled  bool   `json:"influx_enabled"`
	InfluxURL      string `json:"influx_url"`
	InfluxToken    string `json:"influx_token"`
	InfluxOrg      string `json:"influx_org"`
	InfluxBucket   string `json:"influx_bucket"`
}

// Validate checks the influx settings when the sink is enabled.
func (c Config) Validate() error {
	if !c.InfluxEnabled {
		return nil
	}
	if c.InfluxURL == "" || c.InfluxOrg == "" || c.InfluxBucket == "" {
		return fmt.Errorf("influx sink requires influx_url, influx_org and influx_bucket")
	}
	return nil
}

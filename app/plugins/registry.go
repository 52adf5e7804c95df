package plugins

import (
	"fmt"
	"sort"

	coremetrics "github.com/kilianp07/smartbin/core/metrics"
	"github.com/kilianp07/smartbin/core/prediction"
)

// ModelFactory loads a fill-rate model from an artifact path.
type ModelFactory func(path string) (prediction.RatePredictor, error)

// MetricsFactory builds a metrics sink from the metrics configuration.
type MetricsFactory func(cfg coremetrics.Config) (coremetrics.MetricsSink, error)

var (
	Models           = map[string]ModelFactory{}
	MetricsExporters = map[string]MetricsFactory{}
)

func RegisterModel(name string, f ModelFactory)     { Models[name] = f }
func RegisterMetrics(name string, f MetricsFactory) { MetricsExporters[name] = f }

// LoadModel resolves kind and loads the artifact at path.
func LoadModel(kind, path string) (prediction.RatePredictor, error) {
	f, ok := Models[kind]
	if !ok {
		return nil, fmt.Errorf("unknown model kind %q (available: %v)", kind, names(Models))
	}
	return f(path)
}

// EnabledSinks builds every sink switched on in cfg, in a stable order.
func EnabledSinks(cfg coremetrics.Config) ([]coremetrics.MetricsSink, error) {
	enabled := map[string]bool{
		"prometheus": cfg.PrometheusEnabled,
		"influx":     cfg.InfluxEnabled,
	}
	var sinks []coremetrics.MetricsSink
	for _, name := range names(MetricsExporters) {
		if !enabled[name] {
			continue
		}
		s, err := MetricsExporters[name](cfg)
		if err != nil {
			return nil, fmt.Errorf("%s sink: %w", name, err)
		}
		sinks = append(sinks, s)
	}
	return sinks, nil
}

func names[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

package plugins

import (
	coremetrics "github.com/kilianp07/smartbin/core/metrics"
	"github.com/kilianp07/smartbin/core/prediction"
	inframetrics "github.com/kilianp07/smartbin/infra/metrics"
)

func init() {
	RegisterModel("linear", func(path string) (prediction.RatePredictor, error) {
		m, err := prediction.LoadModel(path)
		if err != nil {
			return nil, err
		}
		return m, nil
	})

	RegisterMetrics("prometheus", func(_ coremetrics.Config) (coremetrics.MetricsSink, error) {
		return inframetrics.NewPromSink()
	})
	RegisterMetrics("influx", func(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
		return inframetrics.NewInfluxSinkWithFallback(cfg), nil
	})
}

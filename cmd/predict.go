package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/smartbin/api/predict"
	"github.com/kilianp07/smartbin/app"
	"github.com/kilianp07/smartbin/config"
	"github.com/kilianp07/smartbin/core/model"
)

var predictReq = model.PredictionRequest{WeatherCondition: model.DefaultWeather}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Run a single prediction and print the result as JSON",
	RunE:  runPredict,
}

func init() {
	f := predictCmd.Flags()
	f.Float64Var(&predictReq.WetLevel, "wet-level", 0, "wet compartment fill level (0-100)")
	f.Float64Var(&predictReq.DryLevel, "dry-level", 0, "dry compartment fill level (0-100)")
	f.Float64Var(&predictReq.AvgFillRateLast3h, "avg-fill-rate", 0, "average fill rate over the last three hours")
	f.Float64Var(&predictReq.PreviousDaySameTimeLevel, "previous-day-level", 0, "fill level at the same time yesterday")
	f.StringVar(&predictReq.WeatherCondition, "weather", model.DefaultWeather, "weather condition tag")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	p, err := app.NewPredictor(cfg)
	if err != nil {
		return err
	}
	res, err := p.Predict(cmd.Context(), predictReq.WithDefaults())
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(predict.NewResponse(res))
}

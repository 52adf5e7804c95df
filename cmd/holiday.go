package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/smartbin/app"
	"github.com/kilianp07/smartbin/config"
	"github.com/kilianp07/smartbin/core/holiday"
)

var holidayDate string

var holidayCmd = &cobra.Command{
	Use:   "holiday",
	Short: "Show the holiday factor applied on a date",
	RunE:  runHoliday,
}

func init() {
	holidayCmd.Flags().StringVar(&holidayDate, "date", "", "date as YYYY-MM-DD (default: today)")
	rootCmd.AddCommand(holidayCmd)
}

func runHoliday(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	loc, err := cfg.Calendar.Location()
	if err != nil {
		return err
	}
	day := time.Now().In(loc)
	if holidayDate != "" {
		day, err = time.ParseInLocation(holiday.DateLayout, holidayDate, loc)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
	}
	r, err := app.NewHolidayResolver(cfg.Calendar)
	if err != nil {
		return err
	}
	hf := r.Resolve(day)
	out := cmd.OutOrStdout()
	if !hf.IsHoliday {
		_, err = fmt.Fprintf(out, "%s: no holiday (factor %.2f)\n", day.Format(holiday.DateLayout), hf.Factor)
		return err
	}
	_, tier := r.Classify(*hf.Name)
	if tier == "" {
		tier = "unclassified"
	}
	_, err = fmt.Fprintf(out, "%s: %s [%s] (factor %.2f)\n", day.Format(holiday.DateLayout), *hf.Name, tier, hf.Factor)
	return err
}

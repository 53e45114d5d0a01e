package cmd

import (
	"context"

	"ccplan/internal/forecast"
	"ccplan/internal/tui"

	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	pd, err := loadPlan(context.Background())
	if err != nil {
		return err
	}

	pct := pd.headroomPercent()
	adjusted, err := forecast.ApplyHeadroom(pd.periods, pct)
	if err != nil {
		// Bad configured headroom shouldn't block the dashboard.
		adjusted = pd.periods
		pct = 0
	}

	return tui.Run(tui.Data{
		FiscalYear: pd.fy,
		Loc:        pd.loc,
		Now:        pd.now,
		Days:       pd.daily.Days,
		Periods:    pd.periods,
		Adjusted:   adjusted,
		Headroom:   pct,
	})
}

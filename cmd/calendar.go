package cmd

import (
	"context"
	"fmt"
	"time"

	"ccplan/internal/cli"
	"ccplan/internal/fiscal"

	"github.com/spf13/cobra"
)

var flagCalendarMonth string

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Projected daily spending calendar",
	Long: "Show projected spending per month across the fiscal year, or per day\n" +
		"for a single month with --month.",
	RunE: runCalendar,
}

func init() {
	calendarCmd.Flags().StringVarP(&flagCalendarMonth, "month", "m", "", "Show daily detail for one month (YYYY-MM)")
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(_ *cobra.Command, _ []string) error {
	pd, err := loadPlan(context.Background())
	if err != nil {
		return err
	}

	if flagCalendarMonth != "" {
		return renderMonthDetail(pd, flagCalendarMonth)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SPENDING CALENDAR"))
	fmt.Println()

	rows := make([][]string, 0, 12)
	for _, mp := range fiscal.MonthlyPeriods(pd.fy.Start, pd.fy.End) {
		var total float64
		days := 0
		for d := mp.Start; !d.After(mp.End); d = d.AddDate(0, 0, 1) {
			total += pd.daily.Days[fiscal.DayKey(d)]
			days++
		}
		rows = append(rows, []string{
			mp.Start.Format("Jan 2006"),
			fmt.Sprintf("%d", days),
			cli.FormatAmount(total),
			cli.FormatAmount(total / float64(days)),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Days", "Projected", "Daily Avg"},
		Rows:    rows,
	}))
	return nil
}

func renderMonthDetail(pd *planData, monthKey string) error {
	month, err := time.ParseInLocation(fiscal.MonthKeyLayout, monthKey, pd.loc)
	if err != nil {
		return fmt.Errorf("invalid month %q, want YYYY-MM", monthKey)
	}

	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, pd.loc)
	end := fiscal.EndOfDay(start.AddDate(0, 1, -1))
	if start.Before(pd.fy.Start) || start.After(pd.fy.End) {
		return fmt.Errorf("%s is outside the current fiscal year", monthKey)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("DAILY SPENDING  " + start.Format("January 2006")))
	fmt.Println()

	var rows [][]string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		rows = append(rows, []string{
			fiscal.DayKey(d),
			d.Format("Mon"),
			cli.FormatAmount(pd.daily.Days[fiscal.DayKey(d)]),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Projected"},
		Rows:    rows,
	}))
	return nil
}

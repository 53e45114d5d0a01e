package cmd

import (
	"context"
	"fmt"

	"ccplan/internal/cli"
	"ccplan/internal/model"

	"github.com/spf13/cobra"
)

var breakdownCmd = &cobra.Command{
	Use:   "breakdown <YYYY-MM>",
	Short: "Category breakdown for one repayment month",
	Args:  cobra.ExactArgs(1),
	RunE:  runBreakdown,
}

func init() {
	rootCmd.AddCommand(breakdownCmd)
}

func runBreakdown(_ *cobra.Command, args []string) error {
	pd, err := loadPlan(context.Background())
	if err != nil {
		return err
	}

	var period *model.BillingPeriod
	for i := range pd.periods {
		if pd.periods[i].RepaymentMonth == args[0] {
			period = &pd.periods[i]
			break
		}
	}
	if period == nil {
		return fmt.Errorf("no billing period repaying in %s (try `ccplan repayments`)", args[0])
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BREAKDOWN  %s  (%s – %s)",
		cli.FormatMonthKey(period.RepaymentMonth),
		cli.FormatDateShort(period.Start),
		cli.FormatDateShort(period.End))))
	fmt.Println()

	rows := make([][]string, 0, len(period.Breakdown))
	for _, cb := range period.Breakdown {
		rows = append(rows, []string{
			cb.CategoryTitle,
			cli.FormatAmount(cb.ProratedAmount),
			fmt.Sprintf("%d", len(cb.Bills)),
			cli.FormatAmount(cb.TotalAmount),
		})
	}
	rows = append(rows, []string{"Total", "", "", cli.FormatAmount(period.TotalSpending)})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Prorated", "Bills", "Total"},
		Rows:    rows,
	}))

	billRows := make([][]string, 0)
	for _, cb := range period.Breakdown {
		for _, bill := range cb.Bills {
			note := bill.Event.Note
			if note == "" {
				note = "-"
			}
			billRows = append(billRows, []string{
				cli.FormatDateShort(bill.Date),
				cb.CategoryTitle,
				note,
				cli.FormatAmount(bill.Amount),
			})
		}
	}
	if len(billRows) > 0 {
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "BILLS",
			Headers: []string{"Date", "Category", "Note", "Amount"},
			Rows:    billRows,
		}))
	}

	return nil
}

package cmd

import (
	"context"
	"errors"
	"fmt"

	"ccplan/internal/cli"
	"ccplan/internal/config"
	"ccplan/internal/fiscal"
	"ccplan/internal/forecast"
	"ccplan/internal/model"
	"ccplan/internal/pocketsmith"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagPush bool

var repaymentsCmd = &cobra.Command{
	Use:   "repayments",
	Short: "Monthly repayment schedule",
	Long: "Show each credit-card billing cycle with its total and headroom-adjusted\n" +
		"repayment amount. With --push, write the adjusted amounts back to the\n" +
		"recurring repayment events on PocketSmith.",
	RunE: runRepayments,
}

func init() {
	repaymentsCmd.Flags().BoolVar(&flagPush, "push", false, "Update the upstream scheduled repayment events")
	rootCmd.AddCommand(repaymentsCmd)
}

func runRepayments(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	pd, err := loadPlan(ctx)
	if err != nil {
		return err
	}

	if len(pd.periods) == 0 {
		fmt.Println("\n  No upcoming billing periods in the available data.")
		return nil
	}

	pct := pd.headroomPercent()
	adjusted, err := forecast.ApplyHeadroom(pd.periods, pct)
	if err != nil {
		return fmt.Errorf("headroom %v: %w", pct, err)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("CREDIT CARD REPAYMENTS"))
	fmt.Println()
	renderSchedule(pd)

	if !flagPush {
		return nil
	}
	return pushRepayments(ctx, pd, adjusted)
}

// pushRepayments updates the upstream recurring repayment event for each
// repayment month, after confirmation. The series is matched by the
// configured repayment category title, exact match.
func pushRepayments(ctx context.Context, pd *planData, adjusted []model.BillingPeriod) error {
	targets := repaymentTargets(pd.events, pd.cfg.Budget.RepaymentCategory)
	if len(targets) == 0 {
		return fmt.Errorf("no scheduled events found in category %q to update", pd.cfg.Budget.RepaymentCategory)
	}

	var confirmed bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Update %d repayment event(s) on PocketSmith?", len(adjusted))).
			Description("Amounts include the configured headroom.").
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("  Aborted, nothing updated.")
		return nil
	}

	apiKey := config.GetAPIKey(pd.cfg)
	client := pocketsmith.NewClient(apiKey, pd.cfg.PocketSmith.BaseURL)
	if client == nil {
		return errors.New("no API key configured; run `ccplan setup`")
	}

	updated := 0
	for _, period := range adjusted {
		target, ok := targets[period.RepaymentMonth]
		if !ok {
			printWarnings([]string{fmt.Sprintf("no repayment event in %s, skipped", cli.FormatMonthKey(period.RepaymentMonth))})
			continue
		}

		// Repayments are debits upstream; push the total as a negative
		// amount and update only this occurrence.
		err := client.UpdateEventAmount(ctx, target.ID, -period.TotalSpending, "one")
		if err != nil {
			return fmt.Errorf("updating %s: %w", cli.FormatMonthKey(period.RepaymentMonth), err)
		}
		updated++
	}

	fmt.Printf("  Updated %d repayment event(s).\n", updated)
	return nil
}

// repaymentTargets indexes the repayment-category events by month.
func repaymentTargets(events []model.BudgetEvent, category string) map[string]model.BudgetEvent {
	targets := make(map[string]model.BudgetEvent)
	for _, ev := range events {
		if ev.Category.Title != category || ev.Date.IsZero() {
			continue
		}
		targets[fiscal.MonthKey(ev.Date)] = ev
	}
	return targets
}

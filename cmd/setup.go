package cmd

import (
	"fmt"
	"strconv"
	"time"

	"ccplan/internal/config"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	apiKey := cfg.PocketSmith.APIKey
	headroom := strconv.FormatFloat(cfg.Budget.HeadroomPercent, 'f', -1, 64)
	category := cfg.Budget.RepaymentCategory
	zone := cfg.Budget.TimeZone

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("PocketSmith developer key").
				Description("From Settings → Security → Manage developer keys.").
				EchoMode(huh.EchoModePassword).
				Value(&apiKey),
			huh.NewInput().
				Title("Default headroom percent").
				Description("Safety margin added to repayment totals, 0-100.").
				Value(&headroom).
				Validate(validateHeadroom),
			huh.NewInput().
				Title("Repayment category").
				Description("Category title of the recurring repayment events.").
				Value(&category),
			huh.NewInput().
				Title("Fiscal time zone").
				Value(&zone).
				Validate(validateZone),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	cfg.PocketSmith.APIKey = apiKey
	cfg.Budget.HeadroomPercent, _ = strconv.ParseFloat(headroom, 64)
	if category != "" {
		cfg.Budget.RepaymentCategory = category
	}
	if zone != "" {
		cfg.Budget.TimeZone = zone
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `ccplan setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func validateHeadroom(s string) error {
	if s == "" {
		return nil
	}
	pct, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if pct < 0 || pct > 100 {
		return fmt.Errorf("must be between 0 and 100")
	}
	return nil
}

func validateZone(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.LoadLocation(s); err != nil {
		return fmt.Errorf("unknown time zone")
	}
	return nil
}

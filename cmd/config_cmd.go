package cmd

import (
	"fmt"

	"ccplan/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	source := "not set"
	if key := config.GetAPIKey(cfg); key != "" {
		source = maskAPIKey(key)
		if cfg.PocketSmith.APIKey == "" {
			source += " (from environment)"
		}
	}

	fmt.Println()
	fmt.Printf("  Config file:        %s", config.ConfigPath())
	if !config.Exists() {
		fmt.Print("  (missing, using defaults)")
	}
	fmt.Println()
	fmt.Printf("  API key:            %s\n", source)
	fmt.Printf("  Headroom:           %.1f%%\n", cfg.Budget.HeadroomPercent)
	fmt.Printf("  Repayment category: %s\n", cfg.Budget.RepaymentCategory)
	fmt.Printf("  Time zone:          %s\n", cfg.Budget.TimeZone)
	fmt.Printf("  Cache TTL:          %dm\n", cfg.General.CacheTTLMinutes)
	fmt.Printf("  Cache path:         %s\n", config.CachePath())
	fmt.Println()

	return nil
}

func maskAPIKey(key string) string {
	if len(key) > 12 {
		return key[:6] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}

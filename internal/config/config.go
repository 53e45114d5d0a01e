// Package config loads and saves ccplan configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ccplan/internal/fiscal"

	"github.com/BurntSushi/toml"
)

// Config holds all ccplan configuration.
type Config struct {
	PocketSmith PocketSmithConfig `toml:"pocketsmith"`
	Budget      BudgetConfig      `toml:"budget"`
	General     GeneralConfig     `toml:"general"`
}

// PocketSmithConfig holds API access settings.
type PocketSmithConfig struct {
	APIKey  string `toml:"api_key,omitempty"`
	BaseURL string `toml:"base_url,omitempty"`
}

// BudgetConfig holds planning settings.
type BudgetConfig struct {
	// HeadroomPercent is the default safety margin applied to repayment
	// totals, 0-100.
	HeadroomPercent float64 `toml:"headroom_percent"`

	// RepaymentCategory is the title of the upstream category holding
	// the computed repayment events. Matched exactly.
	RepaymentCategory string `toml:"repayment_category"`

	// TimeZone anchors all fiscal date math.
	TimeZone string `toml:"time_zone"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	// CacheTTLMinutes controls how long fetched events are served from
	// the local cache before refetching.
	CacheTTLMinutes int `toml:"cache_ttl_minutes"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Budget: BudgetConfig{
			RepaymentCategory: "Credit Card Repayments",
			TimeZone:          fiscal.DefaultZone,
		},
		General: GeneralConfig{
			CacheTTLMinutes: 60,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ccplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ccplan")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// CachePath returns the path of the local event cache database.
func CachePath() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "ccplan", "events.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "ccplan", "events.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// GetAPIKey returns the developer key from env var or config, in that order.
func GetAPIKey(cfg Config) string {
	if key := os.Getenv("POCKETSMITH_API_KEY"); key != "" {
		return key
	}
	return cfg.PocketSmith.APIKey
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// Location resolves the configured fiscal time zone, falling back to the
// default zone and finally UTC if neither loads.
func (c Config) Location() *time.Location {
	if loc, err := time.LoadLocation(c.Budget.TimeZone); err == nil {
		return loc
	}
	if loc, err := time.LoadLocation(fiscal.DefaultZone); err == nil {
		return loc
	}
	return time.UTC
}

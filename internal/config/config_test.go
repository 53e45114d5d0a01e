package config

import (
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Budget.RepaymentCategory != "Credit Card Repayments" {
		t.Errorf("repayment category = %q", cfg.Budget.RepaymentCategory)
	}
	if cfg.Budget.TimeZone != "Pacific/Auckland" {
		t.Errorf("time zone = %q", cfg.Budget.TimeZone)
	}
	if cfg.General.CacheTTLMinutes != 60 {
		t.Errorf("cache ttl = %d", cfg.General.CacheTTLMinutes)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.PocketSmith.APIKey = "dev-key"
	cfg.Budget.HeadroomPercent = 12.5
	cfg.Budget.RepaymentCategory = "CC Repay"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists false after Save")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.PocketSmith.APIKey != "dev-key" {
		t.Errorf("api key = %q", loaded.PocketSmith.APIKey)
	}
	if loaded.Budget.HeadroomPercent != 12.5 {
		t.Errorf("headroom = %f", loaded.Budget.HeadroomPercent)
	}
	if loaded.Budget.RepaymentCategory != "CC Repay" {
		t.Errorf("repayment category = %q", loaded.Budget.RepaymentCategory)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Budget.RepaymentCategory != "Credit Card Repayments" {
		t.Errorf("missing file did not yield defaults: %+v", cfg)
	}
}

func TestGetAPIKey_EnvWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PocketSmith.APIKey = "from-file"

	t.Setenv("POCKETSMITH_API_KEY", "from-env")
	if got := GetAPIKey(cfg); got != "from-env" {
		t.Errorf("GetAPIKey = %q, want env value", got)
	}

	t.Setenv("POCKETSMITH_API_KEY", "")
	if got := GetAPIKey(cfg); got != "from-file" {
		t.Errorf("GetAPIKey = %q, want file value", got)
	}
}

func TestLocation_FallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Budget.TimeZone = "Not/AZone"

	loc := cfg.Location()
	if loc.String() != "Pacific/Auckland" {
		t.Errorf("fallback location = %v, want Pacific/Auckland", loc)
	}
}

package config_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/goatm/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ATM_METRICS_FILE", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.LogLevel != "warn" || cfg.LogFormat != "console" {
		t.Fatalf("unexpected logging defaults: level=%s format=%s", cfg.LogLevel, cfg.LogFormat)
	}

	if cfg.CurrencySymbol != "$" {
		t.Fatalf("expected default currency symbol $, got %q", cfg.CurrencySymbol)
	}

	if cfg.MetricsFile != "" {
		t.Fatalf("expected metrics file default to be empty, got %q", cfg.MetricsFile)
	}

	want := []config.SeedAccount{
		{ID: "1234", Pin: "4321", Balance: decimal.RequireFromString("500.00")},
		{ID: "3456", Pin: "0000", Balance: decimal.RequireFromString("300.00")},
		{ID: "7890", Pin: "1111", Balance: decimal.RequireFromString("700.00")},
	}

	if len(cfg.SeedAccounts) != len(want) {
		t.Fatalf("expected %d seed accounts, got %d", len(want), len(cfg.SeedAccounts))
	}

	for i, w := range want {
		got := cfg.SeedAccounts[i]
		if got.ID != w.ID || got.Pin != w.Pin || !got.Balance.Equal(w.Balance) {
			t.Fatalf("seed %d = %+v, want %+v", i, got, w)
		}
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("ATM_SEED_ACCOUNTS", "42:0042:12.34")
	t.Setenv("ATM_CURRENCY_SYMBOL", "€")
	t.Setenv("ATM_METRICS_FILE", "/tmp/atm.prom")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("expected logging overrides, got level=%s format=%s", cfg.LogLevel, cfg.LogFormat)
	}

	if len(cfg.SeedAccounts) != 1 || cfg.SeedAccounts[0].ID != "42" || cfg.SeedAccounts[0].Pin != "0042" {
		t.Fatalf("unexpected seed accounts: %+v", cfg.SeedAccounts)
	}

	if cfg.CurrencySymbol != "€" || cfg.MetricsFile != "/tmp/atm.prom" {
		t.Fatalf("unexpected overrides: symbol=%s metrics=%s", cfg.CurrencySymbol, cfg.MetricsFile)
	}
}

func TestLoadInvalidSeed(t *testing.T) {
	tests := []string{
		"1234:4321",
		"1234:4321:abc",
		":4321:10",
	}

	for _, seeds := range tests {
		t.Run(seeds, func(t *testing.T) {
			t.Setenv("ATM_SEED_ACCOUNTS", seeds)

			if _, err := config.Load(); err == nil {
				t.Fatalf("expected error for seed %q", seeds)
			}
		})
	}
}

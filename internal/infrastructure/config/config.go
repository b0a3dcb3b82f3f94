package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/shopspring/decimal"
)

// Config holds all application configuration.
type Config struct {
	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// Accounts
	SeedAccounts []SeedAccount `env:"ATM_SEED_ACCOUNTS" envDefault:"1234:4321:500.00,3456:0000:300.00,7890:1111:700.00" envSeparator:","`

	// Presentation
	CurrencySymbol string `env:"ATM_CURRENCY_SYMBOL" envDefault:"$"`

	// Metrics (empty disables the textfile export)
	MetricsFile string `env:"ATM_METRICS_FILE" envDefault:""`
}

// SeedAccount is one row of the account table, written as id:pin:balance.
type SeedAccount struct {
	ID      string
	Pin     string
	Balance decimal.Decimal
}

// UnmarshalText parses an id:pin:balance triple.
func (s *SeedAccount) UnmarshalText(text []byte) error {
	parts := strings.Split(strings.TrimSpace(string(text)), ":")
	if len(parts) != 3 {
		return fmt.Errorf("seed account %q: want id:pin:balance", text)
	}

	if parts[0] == "" {
		return fmt.Errorf("seed account %q: empty id", text)
	}

	balance, err := decimal.NewFromString(parts[2])
	if err != nil {
		return fmt.Errorf("seed account %q: balance: %w", text, err)
	}

	s.ID = parts[0]
	s.Pin = parts[1]
	s.Balance = balance

	return nil
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

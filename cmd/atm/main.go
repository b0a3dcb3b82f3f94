package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/goatm/internal/adapter/cli"
	"github.com/iho/goatm/internal/adapter/repository/memory"
	"github.com/iho/goatm/internal/domain"
	"github.com/iho/goatm/internal/infrastructure/config"
	"github.com/iho/goatm/internal/infrastructure/logger"
	"github.com/iho/goatm/internal/infrastructure/metrics"
	"github.com/iho/goatm/internal/usecase"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var metricsFile string

	rootCmd := &cobra.Command{
		Use:          "atm",
		Short:        "Automated teller simulator",
		Long:         `An interactive teller session over a fixed, in-memory account table.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(metricsFile)
			if err != nil {
				return err
			}

			return runSession(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit (overrides ATM_METRICS_FILE)")

	rootCmd.AddCommand(accountsCmd())

	return rootCmd
}

func accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List seeded accounts and opening balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			accountRepo, _, err := newAccountRepository(cfg)
			if err != nil {
				return err
			}

			summaries, err := usecase.NewAccountUseCase(accountRepo).List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list accounts: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tBALANCE")
			for _, s := range summaries {
				fmt.Fprintf(w, "%s\t%s%s\n", s.ID, cfg.CurrencySymbol, s.Balance.StringFixed(domain.AmountPlaces))
			}

			return w.Flush()
		},
	}
}

func loadConfig(metricsFile string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if metricsFile != "" {
		cfg.MetricsFile = metricsFile
	}

	return cfg, nil
}

// newAccountRepository builds the account table from the configured seeds
// and returns the IDs in configuration order.
func newAccountRepository(cfg *config.Config) (*memory.AccountRepository, []string, error) {
	seeds := make([]memory.Seed, 0, len(cfg.SeedAccounts))
	ids := make([]string, 0, len(cfg.SeedAccounts))
	for _, s := range cfg.SeedAccounts {
		seeds = append(seeds, memory.Seed{ID: s.ID, Pin: s.Pin, Balance: s.Balance})
		ids = append(ids, s.ID)
	}

	accountRepo, err := memory.NewAccountRepository(seeds)
	if err != nil {
		return nil, nil, err
	}

	return accountRepo, ids, nil
}

func runSession(ctx context.Context, cfg *config.Config, in io.Reader, out, errOut io.Writer) error {
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: errOut,
	})

	accountRepo, ids, err := newAccountRepository(cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to build account table")
		return err
	}
	log.Debug().Int("accounts", len(ids)).Msg("account table ready")

	m := metrics.New()
	session := usecase.NewSessionUseCase(accountRepo, memory.NewULIDGenerator(), memory.SystemClock{}, m, log)

	term := cli.NewTerminal(session, in, out, cli.Config{
		CurrencySymbol: cfg.CurrencySymbol,
		Location:       time.Local,
		AccountIDs:     ids,
	})

	runErr := term.Run(ctx)
	if runErr != nil {
		log.Error().Err(runErr).Msg("session ended with error")
	}

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Error().Err(err).Str("path", cfg.MetricsFile).Msg("failed to write metrics")
			if runErr == nil {
				runErr = err
			}
		} else {
			log.Info().Str("path", cfg.MetricsFile).Msg("metrics written")
		}
	}

	log.Debug().Str("state", session.State().String()).Msg("session closed")

	return runErr
}

/*
Package cli implements the phonepick commands.

The root command runs an interactive recommendation session; subcommands
inspect the catalog and replay generated queries against the model.
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/phonepick/internal/adapters/console"
	service "github.com/okian/phonepick/internal/app"
	"github.com/okian/phonepick/internal/config"
	"github.com/okian/phonepick/pkg/logger"
)

// NewRootCmd creates the root command. Running it with no subcommand starts
// an interactive session.
func NewRootCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "phonepick",
		Short: "Interactive smartphone recommender",
		Long: `phonepick trains a boosted classifier on a smartphone catalog and
recommends a device from your preferred operating system and maximum
charging time. Previously shown devices are never repeated for the
same preferences.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSession(cmd.Context(), catalogPath)
		},
	}

	cmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "", "Catalog CSV file (overrides configuration)")

	cmd.AddCommand(NewCatalogCmd())
	cmd.AddCommand(NewSimulateCmd())

	return cmd
}

// loadConfig loads the layered configuration and applies the configured log
// level. An optional flag value overrides the catalog path.
func loadConfig(ctx context.Context, catalogOverride string) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if catalogOverride != "" {
		cfg.CatalogPath = catalogOverride
	}
	return cfg, nil
}

// runSession runs one interactive recommendation session on stdin/stdout.
func runSession(ctx context.Context, catalogOverride string) error {
	cfg, err := loadConfig(ctx, catalogOverride)
	if err != nil {
		return err
	}

	prompter := console.NewPrompter(os.Stdin, os.Stdout)
	svc := service.New(
		service.WithCatalogPath(cfg.CatalogPath),
		service.WithPrompter(prompter),
		service.WithLogger(logger.Get()),
		service.WithBoostRounds(cfg.BoostRounds),
		service.WithMaxPredictAttempts(cfg.MaxPredictAttempts),
		service.WithHistoryCapacity(cfg.HistoryCapacity),
	)

	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	if err := svc.Run(ctx); err != nil {
		if errors.Is(err, console.ErrEndOfInput) {
			prompter.Inform("Goodbye.")
			return nil
		}
		return err
	}
	return nil
}

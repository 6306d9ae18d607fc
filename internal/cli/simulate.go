package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/phonepick/internal/simulate"
)

// NewSimulateCmd creates the 'simulate' command for replaying generated
// queries against the trained model.
func NewSimulateCmd() *cobra.Command {
	var sessions int
	var seed int64
	var verbose bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay generated preference queries against the model",
		Long: `Train the classifier on the catalog and replay randomly generated
preference queries to exercise prediction and history deduplication.
A fixed seed reproduces the same query sequence.`,
		Example: `  phonepick simulate
  phonepick simulate --sessions 100 --seed 42`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			override, _ := cmd.Flags().GetString("catalog")
			cfg, err := loadConfig(cmd.Context(), override)
			if err != nil {
				return err
			}

			if sessions <= 0 {
				sessions = cfg.SimulateSessions
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			return simulate.Run(cmd.Context(), &simulate.Config{
				CatalogPath:        cfg.CatalogPath,
				Sessions:           sessions,
				Seed:               seed,
				BoostRounds:        cfg.BoostRounds,
				MaxPredictAttempts: cfg.MaxPredictAttempts,
				Verbose:            verbose,
			})
		},
	}

	cmd.Flags().IntVarP(&sessions, "sessions", "n", 0, "Number of simulated queries (defaults to configuration)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Query generator seed (0 picks a time-based seed)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every exhausted query")

	return cmd
}

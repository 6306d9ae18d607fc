// Package simulate replays randomly generated preference queries against a
// freshly trained model to exercise the prediction and deduplication paths
// without console input.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/phonepick/internal/catalog"
	"github.com/okian/phonepick/internal/domain/classifier"
	"github.com/okian/phonepick/internal/domain/history"
	"github.com/okian/phonepick/internal/domain/model"
	"github.com/okian/phonepick/pkg/logger"
	"github.com/okian/phonepick/pkg/metrics"
)

// ErrNoQueries is returned when the configuration asks for zero sessions.
var ErrNoQueries = errors.New("no queries to simulate")

// Run executes a complete simulation: load the catalog, train the model,
// replay generated queries, and report the outcome.
func Run(ctx context.Context, config *Config) error {
	if config.Sessions <= 0 {
		return ErrNoQueries
	}

	stats := &Stats{
		StartTime: time.Now(),
	}
	runID := uuid.NewString()

	logger.Get().Info(ctx, "starting recommendation simulation",
		logger.String("run", runID),
		logger.String("catalog", config.CatalogPath),
		logger.Int("sessions", config.Sessions),
		logger.Int64("seed", config.Seed),
		logger.Int("boostRounds", config.BoostRounds),
		logger.Int("maxPredictAttempts", config.MaxPredictAttempts),
	)

	// Step 1: load the catalog
	phones, err := catalog.LoadFile(config.CatalogPath)
	if err != nil {
		return fmt.Errorf("catalog load failed: %w", err)
	}
	metrics.UpdateCatalogSize(len(phones))

	// Step 2: train the model
	boosted := classifier.NewBoosted(classifier.WithRounds(config.BoostRounds))
	trainStart := time.Now()
	if err := boosted.Train(ctx, phones); err != nil {
		return fmt.Errorf("training failed: %w", err)
	}
	metrics.RecordTrainingDuration(float64(time.Since(trainStart).Milliseconds()))
	metrics.UpdateModelClasses(len(boosted.Classes()))

	// Step 3: generate queries
	queries := generateQueries(ctx, config, phones, stats)

	// Step 4: replay queries against the model and the history
	hist := history.NewInMemoryHistory(history.WithInitialCapacity(config.Sessions))
	if err := replayQueries(ctx, config, boosted, hist, queries, stats); err != nil {
		return fmt.Errorf("query replay failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(ctx, runID, hist, stats)

	logger.Get().Info(ctx, "simulation completed successfully", logger.String("run", runID))
	return nil
}

// replayQueries runs the predict-and-dedupe loop for every generated query.
// Every fresh recommendation counts as accepted; queries whose every retry
// lands on an already-seen device are counted as exhausted rather than
// failing the run.
func replayQueries(ctx context.Context, config *Config, c classifier.Classifier, hist history.History, queries []model.PreferenceQuery, stats *Stats) error {
	for i, query := range queries {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context cancelled during replay: %w", err)
		}

		fresh, err := replayOne(ctx, config, c, hist, query, stats)
		if err != nil {
			return fmt.Errorf("query %d failed: %w", i, err)
		}
		if fresh {
			stats.FreshRecommendations++
		} else {
			stats.ExhaustedQueries++
			if config.Verbose {
				logger.Get().Debug(ctx, "query exhausted its retry budget",
					logger.Int("query", i),
					logger.String("key", string(query.Key())),
				)
			}
		}
	}
	return nil
}

// replayOne reports whether the query produced a not-yet-seen device within
// the attempt bound.
func replayOne(ctx context.Context, config *Config, c classifier.Classifier, hist history.History, query model.PreferenceQuery, stats *Stats) (bool, error) {
	key := query.Key()

	for attempt := 0; attempt < config.MaxPredictAttempts; attempt++ {
		name, err := c.Predict(ctx, query)
		if err != nil {
			return false, err
		}
		stats.Predictions++
		metrics.RecordPrediction()

		if hist.Seen(ctx, key, name) {
			stats.DuplicatesSuppressed++
			metrics.RecordDuplicateSuppressed()
			continue
		}

		hist.Record(ctx, key, name)
		metrics.UpdateHistoryEntries(hist.Size())
		metrics.RecordAccepted()
		return true, nil
	}
	return false, nil
}

// displayFinalStats logs the outcome of the run together with a metrics
// snapshot.
func displayFinalStats(ctx context.Context, runID string, hist history.History, stats *Stats) {
	var freshRate, queriesPerSecond float64

	if stats.QueriesGenerated > 0 {
		freshRate = float64(stats.FreshRecommendations) / float64(stats.QueriesGenerated) * 100
	}
	if stats.Duration > 0 {
		queriesPerSecond = float64(stats.QueriesGenerated) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.String("run", runID),
		logger.Int("queriesGenerated", stats.QueriesGenerated),
		logger.Int("predictions", stats.Predictions),
		logger.Int("duplicatesSuppressed", stats.DuplicatesSuppressed),
		logger.Int("freshRecommendations", stats.FreshRecommendations),
		logger.Int("exhaustedQueries", stats.ExhaustedQueries),
		logger.Int64("historySize", hist.Size()),
		logger.Int("historyKeys", hist.Keys()),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("freshRate", freshRate),
		logger.Float64("queriesPerSecond", queriesPerSecond),
	)

	if snapshot, err := metrics.Snapshot(); err == nil {
		logger.Get().Info(ctx, "metrics snapshot",
			logger.Float64("predictions", snapshot["phonepick_recommender_predictions_total"]),
			logger.Float64("duplicatesSuppressed", snapshot["phonepick_recommender_duplicates_suppressed_total"]),
			logger.Float64("historyEntries", snapshot["phonepick_recommender_history_entries"]),
		)
	}
}

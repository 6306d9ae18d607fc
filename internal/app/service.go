// Package service provides the recommendation session that orchestrates the
// preference prompts, the classifier, and the recommendation history.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/phonepick/internal/catalog"
	"github.com/okian/phonepick/internal/domain/classifier"
	"github.com/okian/phonepick/internal/domain/history"
	"github.com/okian/phonepick/internal/domain/model"
	"github.com/okian/phonepick/pkg/logger"
	"github.com/okian/phonepick/pkg/metrics"
)

// Default session configuration constants.
const (
	defaultMaxPredictAttempts = 8
	defaultBoostRounds        = 50
	defaultHistoryCapacity    = 16
)

// Prompter abstracts the console interaction so sessions are testable with
// scripted input.
type Prompter interface {
	ReadOperatingSystem(ctx context.Context) (model.OperatingSystem, error)
	ReadMaxChargingTime(ctx context.Context) (float64, error)
	Confirm(ctx context.Context, device string) (bool, error)
	Inform(msg string)
}

// Service implements the recommendation session. One preference query is in
// flight at a time; the session owns the catalog, the trained model, and the
// history for the process lifetime.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      catalog.Store
	classifier classifier.Classifier
	history    history.History
	prompter   Prompter

	// Configuration
	catalogPath        string
	boostRounds        int
	maxPredictAttempts int
	historyCapacity    int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore injects a pre-loaded catalog store.
func WithStore(store catalog.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCatalogPath makes Start load the catalog from the given file when no
// store was injected.
func WithCatalogPath(path string) Option {
	return func(s *Service) {
		s.catalogPath = path
	}
}

// WithClassifier injects a classifier, replacing the boosted default.
func WithClassifier(c classifier.Classifier) Option {
	return func(s *Service) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithHistory injects a recommendation history, replacing the in-memory
// default.
func WithHistory(h history.History) Option {
	return func(s *Service) {
		if h != nil {
			s.history = h
		}
	}
}

// WithPrompter injects the console interaction.
func WithPrompter(p Prompter) Option {
	return func(s *Service) {
		if p != nil {
			s.prompter = p
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBoostRounds caps the boosting rounds of the default classifier.
func WithBoostRounds(rounds int) Option {
	return func(s *Service) {
		if rounds > 0 {
			s.boostRounds = rounds
		}
	}
}

// WithMaxPredictAttempts bounds consecutive duplicate predictions for one
// query before the session gives up.
func WithMaxPredictAttempts(attempts int) Option {
	return func(s *Service) {
		if attempts > 0 {
			s.maxPredictAttempts = attempts
		}
	}
}

// WithHistoryCapacity pre-sizes the default history key map.
func WithHistoryCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.historyCapacity = capacity
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		boostRounds:        defaultBoostRounds,
		maxPredictAttempts: defaultMaxPredictAttempts,
		historyCapacity:    defaultHistoryCapacity,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the catalog if needed and trains the classifier. It must be
// called once before Run.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		if s.catalogPath == "" {
			return ErrNoCatalogSource
		}
		phones, err := catalog.LoadFile(s.catalogPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		s.store = catalog.NewMemoryStore(phones)
	}

	if s.history == nil {
		s.history = history.NewInMemoryHistory(
			history.WithInitialCapacity(s.historyCapacity),
		)
	}
	if s.classifier == nil {
		s.classifier = classifier.NewBoosted(
			classifier.WithRounds(s.boostRounds),
		)
	}

	phones := s.store.All(ctx)
	metrics.UpdateCatalogSize(len(phones))

	trainStart := time.Now()
	if err := s.classifier.Train(ctx, phones); err != nil {
		return fmt.Errorf("train classifier: %w", err)
	}
	metrics.RecordTrainingDuration(float64(time.Since(trainStart).Milliseconds()))

	if boosted, ok := s.classifier.(interface{ Classes() []string }); ok {
		metrics.UpdateModelClasses(len(boosted.Classes()))
	}

	s.started = true
	s.logger.Info(ctx, "recommendation service started",
		logger.Int("catalogSize", len(phones)),
		logger.Int("maxPredictAttempts", s.maxPredictAttempts),
	)

	return nil
}

// Run drives one interactive session: elicit preferences, predict, dedupe
// against history, present, and repeat until the user accepts. It returns
// nil on acceptance and an error on end of input or a fatal classifier
// problem.
func (s *Service) Run(ctx context.Context) error {
	s.mu.RLock()
	started := s.started
	prompter := s.prompter
	s.mu.RUnlock()

	if !started {
		return ErrNotStarted
	}
	if prompter == nil {
		return ErrNoPrompter
	}

	sessionID := uuid.NewString()
	metrics.RecordSessionStarted()
	s.logger.Info(ctx, "session started", logger.String("session", sessionID))

	for {
		query, err := s.elicitPreferences(ctx)
		if err != nil {
			return err
		}

		accepted, err := s.recommend(ctx, sessionID, query)
		if err != nil {
			return err
		}
		if accepted {
			s.logger.Info(ctx, "session finished",
				logger.String("session", sessionID),
				logger.Int64("historySize", s.history.Size()),
			)
			return nil
		}
		// Declined: re-run both preference prompts from scratch.
	}
}

// elicitPreferences runs both validation loops and builds the query.
func (s *Service) elicitPreferences(ctx context.Context) (model.PreferenceQuery, error) {
	os, err := s.prompter.ReadOperatingSystem(ctx)
	if err != nil {
		return model.PreferenceQuery{}, err
	}

	minutes, err := s.prompter.ReadMaxChargingTime(ctx)
	if err != nil {
		return model.PreferenceQuery{}, err
	}

	return model.PreferenceQuery{
		OperatingSystem:        os,
		MaxChargingTimeMinutes: minutes,
	}, nil
}

// recommend runs the predict-and-check loop for one query and reports
// whether the user accepted the surfaced device.
func (s *Service) recommend(ctx context.Context, sessionID string, query model.PreferenceQuery) (bool, error) {
	key := query.Key()

	for attempt := 1; attempt <= s.maxPredictAttempts; attempt++ {
		name, err := s.classifier.Predict(ctx, query)
		if err != nil {
			return false, fmt.Errorf("predict: %w", err)
		}
		metrics.RecordPrediction()

		if s.history.Seen(ctx, key, name) {
			// Same query, fresh predict call. A deterministic model will
			// return the same name, hence the attempt bound.
			metrics.RecordDuplicateSuppressed()
			s.prompter.Inform(fmt.Sprintf("We already suggested %s for these preferences, trying again.", name))
			s.logger.Debug(ctx, "duplicate recommendation suppressed",
				logger.String("session", sessionID),
				logger.String("device", name),
				logger.Int("attempt", attempt),
			)
			continue
		}

		// Shown the moment it is surfaced, regardless of the verdict.
		s.history.Record(ctx, key, name)
		metrics.UpdateHistoryEntries(s.history.Size())

		accepted, err := s.prompter.Confirm(ctx, name)
		if err != nil {
			return false, err
		}
		if accepted {
			metrics.RecordAccepted()
			s.prompter.Inform(fmt.Sprintf("Great, enjoy your %s!", name))
			return true, nil
		}

		metrics.RecordRejected()
		s.logger.Debug(ctx, "recommendation declined",
			logger.String("session", sessionID),
			logger.String("device", name),
		)
		return false, nil
	}

	return false, fmt.Errorf("%w after %d attempts", ErrNoFreshRecommendation, s.maxPredictAttempts)
}

// Stop logs a final summary. The session holds no background resources.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	if snapshot, err := metrics.Snapshot(); err == nil {
		s.logger.Info(ctx, "recommendation service stopped",
			logger.Float64("predictions", snapshot["phonepick_recommender_predictions_total"]),
			logger.Float64("accepted", snapshot["phonepick_recommender_recommendations_accepted_total"]),
			logger.Float64("rejected", snapshot["phonepick_recommender_recommendations_rejected_total"]),
			logger.Float64("duplicatesSuppressed", snapshot["phonepick_recommender_duplicates_suppressed_total"]),
		)
	} else {
		s.logger.Warn(ctx, "metrics snapshot failed", logger.Error(err))
	}

	s.started = false
}

// History exposes the session history, mainly for the simulator and tests.
func (s *Service) History() history.History {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history
}

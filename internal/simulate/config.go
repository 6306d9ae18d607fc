package simulate

import "time"

// Config holds configuration for a simulation run.
type Config struct {
	CatalogPath        string // CSV catalog to load
	Sessions           int    // Number of simulated preference queries
	Seed               int64  // Seed for the query generator
	BoostRounds        int    // Boosting rounds for the trained model
	MaxPredictAttempts int    // Duplicate-retry bound per query
	Verbose            bool   // Enable verbose logging
}

// Stats holds simulation statistics.
type Stats struct {
	QueriesGenerated     int
	Predictions          int
	DuplicatesSuppressed int
	FreshRecommendations int
	ExhaustedQueries     int
	StartTime            time.Time
	EndTime              time.Time
	Duration             time.Duration
}

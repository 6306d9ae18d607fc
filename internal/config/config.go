// Package config defines process configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Layer file and environment overrides in Load.
// - External errors must be wrapped via this package's error helpers.
package config

// Default configuration values.
const (
	defaultCatalogPath        = "smartphones.csv"
	defaultBoostRounds        = 50
	defaultMaxPredictAttempts = 8
	defaultSimulateSessions   = 20
	defaultHistoryCapacity    = 16
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// CatalogPath names the raw catalog file (header + CSV records).
	CatalogPath string `koanf:"catalog_path"`

	// BoostRounds caps the boosting rounds of the classifier.
	BoostRounds int `koanf:"boost_rounds"`

	// MaxPredictAttempts bounds consecutive duplicate predictions for one
	// query before the session gives up.
	MaxPredictAttempts int `koanf:"max_predict_attempts"`

	// SimulateSessions sets the default round count for the simulator.
	SimulateSessions int `koanf:"simulate_sessions"`

	// HistoryCapacity pre-sizes the recommendation history key map.
	HistoryCapacity int `koanf:"history_capacity"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		CatalogPath:        defaultCatalogPath,
		BoostRounds:        defaultBoostRounds,
		MaxPredictAttempts: defaultMaxPredictAttempts,
		SimulateSessions:   defaultSimulateSessions,
		HistoryCapacity:    defaultHistoryCapacity,
	}
}

package service

import "errors"

// Sentinel error kinds for the session service.
var (
	// ErrNotStarted means Run was called before Start.
	ErrNotStarted = errors.New("service not started")

	// ErrNoCatalogSource means neither a store nor a catalog path was
	// configured.
	ErrNoCatalogSource = errors.New("no catalog source configured")

	// ErrNoPrompter is returned by Run when no console interaction was
	// configured.
	ErrNoPrompter = errors.New("no prompter configured")

	// ErrNoFreshRecommendation means the classifier kept returning device
	// names already shown for the preference key. With a deterministic
	// model, re-predicting the same query cannot make progress; the bounded
	// retry surfaces that instead of spinning.
	ErrNoFreshRecommendation = errors.New("no fresh recommendation available")
)

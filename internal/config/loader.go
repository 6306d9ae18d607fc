package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if PHONEPICK_CONFIG is set
//  3. env (prefix PHONEPICK_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("PHONEPICK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: PHONEPICK_CATALOG_PATH, PHONEPICK_BOOST_ROUNDS, ...
	// Map env keys like PHONEPICK_BOOST_ROUNDS -> boost_rounds (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("PHONEPICK_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "phonepick_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.CatalogPath == "" {
		return nil, fmt.Errorf("%w: catalog_path must not be empty", ErrInvalidConfig)
	}
	if cfg.BoostRounds <= 0 {
		return nil, fmt.Errorf("%w: boost_rounds must be positive", ErrInvalidConfig)
	}
	if cfg.MaxPredictAttempts <= 0 {
		return nil, fmt.Errorf("%w: max_predict_attempts must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}

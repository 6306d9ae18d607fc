package simulate

import (
	"context"
	"math/rand"

	"github.com/okian/phonepick/internal/domain/model"
	"github.com/okian/phonepick/pkg/logger"
)

// Charging-time bounds used when the catalog is degenerate (all records
// share one charging time).
const (
	fallbackMinMinutes = 30
	fallbackMaxMinutes = 300
)

// Charging-time values are snapped to this grain so distinct queries still
// collide on the same preference key often enough to exercise the history.
const minutesGrain = 15

// generateQueries produces random but valid preference queries drawn from
// the charging-time range of the loaded catalog.
func generateQueries(ctx context.Context, config *Config, phones []model.Smartphone, stats *Stats) []model.PreferenceQuery {
	logger.Get().Info(ctx, "generating preference queries",
		logger.Int("sessions", config.Sessions),
		logger.Int64("seed", config.Seed),
	)

	rng := rand.New(rand.NewSource(config.Seed))
	minMinutes, maxMinutes := chargingTimeRange(phones)

	queries := make([]model.PreferenceQuery, config.Sessions)
	for i := range queries {
		queries[i] = model.PreferenceQuery{
			OperatingSystem:        randomOperatingSystem(rng),
			MaxChargingTimeMinutes: randomMinutes(rng, minMinutes, maxMinutes),
		}
	}

	stats.QueriesGenerated = len(queries)
	return queries
}

func randomOperatingSystem(rng *rand.Rand) model.OperatingSystem {
	if rng.Intn(2) == 0 {
		return model.Android
	}
	return model.IOS
}

// randomMinutes picks a value in [min, max] snapped down to the grain.
func randomMinutes(rng *rand.Rand, minMinutes, maxMinutes int) float64 {
	m := minMinutes + rng.Intn(maxMinutes-minMinutes+1)
	m -= m % minutesGrain
	if m < minutesGrain {
		m = minutesGrain
	}
	return float64(m)
}

// chargingTimeRange returns the inclusive charging-time span of the catalog.
func chargingTimeRange(phones []model.Smartphone) (int, int) {
	if len(phones) == 0 {
		return fallbackMinMinutes, fallbackMaxMinutes
	}

	minMinutes, maxMinutes := phones[0].ChargingTimeMinutes, phones[0].ChargingTimeMinutes
	for _, p := range phones[1:] {
		if p.ChargingTimeMinutes < minMinutes {
			minMinutes = p.ChargingTimeMinutes
		}
		if p.ChargingTimeMinutes > maxMinutes {
			maxMinutes = p.ChargingTimeMinutes
		}
	}
	if minMinutes == maxMinutes {
		return fallbackMinMinutes, fallbackMaxMinutes
	}
	return minMinutes, maxMinutes
}

package catalog

import (
	"context"
	"strings"

	"github.com/okian/phonepick/internal/domain/model"
)

// Store provides read access to the loaded catalog. The catalog is built
// once at startup and is immutable afterward.
type Store interface {
	// All returns every catalog record in load order.
	All(ctx context.Context) []model.Smartphone

	// Count returns the number of records held.
	Count(ctx context.Context) int

	// CountByOS returns record counts grouped by normalized operating system.
	CountByOS(ctx context.Context) map[string]int
}

// memoryStore implements Store over a slice captured at construction.
type memoryStore struct {
	phones []model.Smartphone
}

// NewMemoryStore creates a Store over the loaded records. The slice is
// copied so later mutation of the argument cannot leak into the store.
func NewMemoryStore(phones []model.Smartphone) Store {
	held := make([]model.Smartphone, len(phones))
	copy(held, phones)
	return &memoryStore{phones: held}
}

func (s *memoryStore) All(ctx context.Context) []model.Smartphone {
	out := make([]model.Smartphone, len(s.phones))
	copy(out, s.phones)
	return out
}

func (s *memoryStore) Count(ctx context.Context) int {
	return len(s.phones)
}

func (s *memoryStore) CountByOS(ctx context.Context) map[string]int {
	counts := make(map[string]int)
	for _, p := range s.phones {
		counts[strings.ToUpper(strings.TrimSpace(p.OperatingSystem))]++
	}
	return counts
}

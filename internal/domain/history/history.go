// Package history tracks which device names have already been surfaced for
// each preference key within a session.
package history

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/phonepick/internal/domain/model"
)

// History records recommendations shown per preference key so the session
// never repeats a device name for the same key. Entries are never removed;
// the history lives exactly as long as the session.
type History interface {
	// Seen reports whether device was previously recorded under key.
	Seen(ctx context.Context, key model.PreferenceKey, device string) bool

	// Record adds device to the set for key, creating the set if the key is
	// new. Recording the same pair twice is a no-op.
	Record(ctx context.Context, key model.PreferenceKey, device string)

	// Size returns the total number of (key, device) pairs recorded.
	Size() int64

	// Keys returns the number of distinct preference keys tracked.
	Keys() int
}

// inMemoryHistory implements History with a map of per-key string sets.
// Growth is monotonic and unbounded; a single interactive session is short
// enough that eviction is not worth the complexity.
type inMemoryHistory struct {
	mu              sync.RWMutex
	shown           map[model.PreferenceKey]map[string]struct{}
	size            atomic.Int64
	initialCapacity int // hint for the key map, not a bound
}

// NewInMemoryHistory creates a new in-memory history with configuration
// options.
func NewInMemoryHistory(opts ...Option) History {
	h := &inMemoryHistory{
		initialCapacity: defaultInitialCapacity,
	}

	for _, opt := range opts {
		opt(h)
	}

	h.shown = make(map[model.PreferenceKey]map[string]struct{}, h.initialCapacity)

	return h
}

// Seen reports whether device was previously recorded under key.
func (h *inMemoryHistory) Seen(ctx context.Context, key model.PreferenceKey, device string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	set, ok := h.shown[key]
	if !ok {
		return false
	}
	_, seen := set[device]
	return seen
}

// Record adds device to the set for key. Idempotent.
func (h *inMemoryHistory) Record(ctx context.Context, key model.PreferenceKey, device string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.shown[key]
	if !ok {
		set = make(map[string]struct{})
		h.shown[key] = set
	}
	if _, exists := set[device]; exists {
		return
	}
	set[device] = struct{}{}
	h.size.Add(1)
}

// Size returns the total number of (key, device) pairs recorded.
func (h *inMemoryHistory) Size() int64 {
	return h.size.Load()
}

// Keys returns the number of distinct preference keys tracked.
func (h *inMemoryHistory) Keys() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.shown)
}

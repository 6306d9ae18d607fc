package history

// defaultInitialCapacity sizes the key map for a typical interactive session.
const defaultInitialCapacity = 16

// Option applies a configuration option to the in-memory history.
type Option func(*inMemoryHistory)

// WithInitialCapacity pre-sizes the key map. It is a hint only; the history
// still grows without bound.
func WithInitialCapacity(capacity int) Option {
	return func(h *inMemoryHistory) {
		if capacity > 0 {
			h.initialCapacity = capacity
		}
	}
}

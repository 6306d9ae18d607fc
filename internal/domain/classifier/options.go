package classifier

// defaultRounds bounds the boosting ensemble; the feature space is tiny, so
// a small ensemble converges quickly.
const defaultRounds = 50

// Option applies a configuration option to the Boosted classifier.
type Option func(*Boosted)

// WithRounds sets the maximum number of boosting rounds.
func WithRounds(rounds int) Option {
	return func(b *Boosted) {
		if rounds > 0 {
			b.rounds = rounds
		}
	}
}

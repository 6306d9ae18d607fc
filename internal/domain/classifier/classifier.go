// Package classifier defines the prediction boundary of the recommender and
// provides the boosted-tree implementation used in production wiring.
//
// The session consumes the Classifier interface only: train once over the
// full catalog, then predict a single top device name per query. Tests
// substitute deterministic stubs.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/okian/phonepick/internal/domain/model"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNotTrained   = errors.New("classifier not trained")
	ErrEmptyCatalog = errors.New("empty training catalog")
)

// Classifier turns a preference query into a device-name prediction.
// Implementations expose only the top label; no ranked alternatives.
type Classifier interface {
	// Train fits the model over the full catalog. It must be called once
	// before Predict.
	Train(ctx context.Context, catalog []model.Smartphone) error

	// Predict returns the best-guess device name for the query.
	Predict(ctx context.Context, query model.PreferenceQuery) (string, error)
}

// stump is a depth-1 decision tree over one feature.
type stump struct {
	feature   int
	threshold float64
	left      int // class index when feature value <= threshold
	right     int // class index otherwise
}

func (s stump) classify(features []float64) int {
	if features[s.feature] <= s.threshold {
		return s.left
	}
	return s.right
}

// weighted pairs a stump with its ensemble vote weight.
type weighted struct {
	stump stump
	alpha float64
}

// Boosted implements Classifier with multiclass AdaBoost (SAMME) over
// decision stumps. Training is deterministic for identical input: labels are
// index-sorted and stump search breaks ties on the lowest feature and
// threshold, so repeated predictions for the same query return the same name.
type Boosted struct {
	mu sync.RWMutex

	rounds int

	trained   bool
	trainedAt time.Time
	classes   []string
	ensemble  []weighted
	majority  int // fallback class when no stump beats chance
}

// NewBoosted creates a boosted classifier with configuration options.
func NewBoosted(opts ...Option) *Boosted {
	b := &Boosted{
		rounds: defaultRounds,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Train fits the ensemble over the full catalog.
func (b *Boosted) Train(ctx context.Context, catalog []model.Smartphone) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(catalog) == 0 {
		return ErrEmptyCatalog
	}

	classes, labels := indexLabels(catalog)
	features := make([][]float64, len(catalog))
	for i, p := range catalog {
		features[i] = p.Features()
	}

	b.classes = classes
	b.ensemble = nil
	b.majority = majorityClass(labels, len(classes))

	k := len(classes)
	if k > 1 {
		ensemble, err := b.boost(ctx, features, labels, k)
		if err != nil {
			return err
		}
		b.ensemble = ensemble
	}

	b.trained = true
	b.trainedAt = time.Now()
	return nil
}

// boost runs SAMME rounds and returns the fitted ensemble.
func (b *Boosted) boost(ctx context.Context, features [][]float64, labels []int, k int) ([]weighted, error) {
	n := len(labels)
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1 / float64(n)
	}

	var ensemble []weighted
	chance := 1 - 1/float64(k)

	for round := 0; round < b.rounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("training cancelled: %w", err)
		}

		best, bestErr := bestStump(features, labels, weights, k)
		if bestErr >= chance {
			break // weak learner no better than chance
		}

		if bestErr <= 0 {
			// Perfect stump: give it a large but finite vote and stop,
			// further rounds cannot change the weight distribution.
			const perfectVote = 10
			ensemble = append(ensemble, weighted{stump: best, alpha: perfectVote + math.Log(float64(k-1))})
			break
		}

		alpha := math.Log((1-bestErr)/bestErr) + math.Log(float64(k-1))
		ensemble = append(ensemble, weighted{stump: best, alpha: alpha})

		// Re-weight misclassified samples and normalize.
		var total float64
		for i := range weights {
			if best.classify(features[i]) != labels[i] {
				weights[i] *= math.Exp(alpha)
			}
			total += weights[i]
		}
		for i := range weights {
			weights[i] /= total
		}
	}

	return ensemble, nil
}

// Predict returns the device name with the highest ensemble vote.
func (b *Boosted) Predict(ctx context.Context, query model.PreferenceQuery) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("prediction cancelled: %w", err)
	}
	if !b.trained {
		return "", ErrNotTrained
	}

	if len(b.ensemble) == 0 {
		return b.classes[b.majority], nil
	}

	features := query.Features()
	votes := make([]float64, len(b.classes))
	for _, w := range b.ensemble {
		votes[w.stump.classify(features)] += w.alpha
	}

	best := 0
	for c := 1; c < len(votes); c++ {
		if votes[c] > votes[best] {
			best = c
		}
	}
	return b.classes[best], nil
}

// IsTrained reports whether Train completed successfully.
func (b *Boosted) IsTrained() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.trained
}

// Classes returns the label space learned at training time, sorted.
func (b *Boosted) Classes() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.classes))
	copy(out, b.classes)
	return out
}

// indexLabels maps device names to sorted class indices.
func indexLabels(catalog []model.Smartphone) ([]string, []int) {
	seen := make(map[string]struct{}, len(catalog))
	var classes []string
	for _, p := range catalog {
		if _, ok := seen[p.DeviceName]; !ok {
			seen[p.DeviceName] = struct{}{}
			classes = append(classes, p.DeviceName)
		}
	}
	sort.Strings(classes)

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}

	labels := make([]int, len(catalog))
	for i, p := range catalog {
		labels[i] = index[p.DeviceName]
	}
	return classes, labels
}

// majorityClass returns the most frequent class index, lowest index winning
// ties.
func majorityClass(labels []int, k int) int {
	counts := make([]int, k)
	for _, l := range labels {
		counts[l]++
	}
	best := 0
	for c := 1; c < k; c++ {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best
}

// bestStump searches every feature and candidate threshold for the stump
// with minimum weighted error. The scan order makes ties deterministic.
func bestStump(features [][]float64, labels []int, weights []float64, k int) (stump, float64) {
	best := stump{}
	bestErr := math.Inf(1)

	for f := 0; f < model.FeatureCount; f++ {
		for _, threshold := range thresholds(features, f) {
			leftClass, rightClass, err := evaluateSplit(features, labels, weights, k, f, threshold)
			if err < bestErr {
				bestErr = err
				best = stump{feature: f, threshold: threshold, left: leftClass, right: rightClass}
			}
		}
	}
	return best, bestErr
}

// thresholds returns candidate split points for a feature: midpoints between
// consecutive distinct values, in ascending order.
func thresholds(features [][]float64, f int) []float64 {
	values := make([]float64, 0, len(features))
	seen := make(map[float64]struct{}, len(features))
	for _, row := range features {
		if _, ok := seen[row[f]]; !ok {
			seen[row[f]] = struct{}{}
			values = append(values, row[f])
		}
	}
	sort.Float64s(values)

	out := make([]float64, 0, len(values))
	for i := 0; i+1 < len(values); i++ {
		out = append(out, (values[i]+values[i+1])/2)
	}
	return out
}

// evaluateSplit assigns each side its weighted-majority class and returns
// the resulting weighted misclassification error.
func evaluateSplit(features [][]float64, labels []int, weights []float64, k, f int, threshold float64) (leftClass, rightClass int, err float64) {
	left := make([]float64, k)
	right := make([]float64, k)
	var leftTotal, rightTotal float64

	for i, row := range features {
		if row[f] <= threshold {
			left[labels[i]] += weights[i]
			leftTotal += weights[i]
		} else {
			right[labels[i]] += weights[i]
			rightTotal += weights[i]
		}
	}

	leftClass = argmax(left)
	rightClass = argmax(right)
	err = (leftTotal - left[leftClass]) + (rightTotal - right[rightClass])
	return leftClass, rightClass, err
}

func argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}

// Package metrics provides Prometheus metrics for the phonepick recommender.
//
// There is no network surface to scrape, so metrics live on a custom
// registry and are read back in-process via Snapshot for the end-of-run
// summary and the simulator report.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the recommender.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer
	gatherer         prometheus.Gatherer

	// Recommendation flow metrics
	predictions          prometheus.Counter
	duplicatesSuppressed prometheus.Counter
	accepted             prometheus.Counter
	rejected             prometheus.Counter
	invalidInputs        prometheus.Counter
	sessions             prometheus.Counter

	// Model and catalog metrics
	trainingDuration prometheus.Histogram
	catalogSize      prometheus.Gauge
	modelClasses     prometheus.Gauge
	historyEntries   prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry, customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "phonepick",
		subsystem:        "recommender",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
		gatherer:         prometheus.DefaultGatherer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.predictions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_total",
		Help:      "Total number of classifier predictions requested",
	})

	m.duplicatesSuppressed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicates_suppressed_total",
		Help:      "Total number of predictions suppressed because the device was already shown for the preference key",
	})

	m.accepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_accepted_total",
		Help:      "Total number of recommendations the user accepted",
	})

	m.rejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_rejected_total",
		Help:      "Total number of recommendations the user declined",
	})

	m.invalidInputs = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "invalid_inputs_total",
		Help:      "Total number of malformed preference inputs that triggered a re-prompt",
	})

	m.sessions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_total",
		Help:      "Total number of recommendation sessions started",
	})

	m.trainingDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "training_duration_milliseconds",
		Help:      "Histogram of classifier training duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.catalogSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_size",
		Help:      "Number of records in the loaded catalog",
	})

	m.modelClasses = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_classes",
		Help:      "Number of distinct device labels the classifier learned",
	})

	m.historyEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_entries",
		Help:      "Current number of (preference key, device) pairs recorded",
	})
}

// RecordPrediction increments the predictions counter.
func RecordPrediction() {
	globalManager.predictions.Inc()
}

// RecordDuplicateSuppressed increments the suppressed-duplicates counter.
func RecordDuplicateSuppressed() {
	globalManager.duplicatesSuppressed.Inc()
}

// RecordAccepted increments the accepted-recommendations counter.
func RecordAccepted() {
	globalManager.accepted.Inc()
}

// RecordRejected increments the rejected-recommendations counter.
func RecordRejected() {
	globalManager.rejected.Inc()
}

// RecordInvalidInput increments the invalid-input counter.
func RecordInvalidInput() {
	globalManager.invalidInputs.Inc()
}

// RecordSessionStarted increments the sessions counter.
func RecordSessionStarted() {
	globalManager.sessions.Inc()
}

// RecordTrainingDuration records classifier training duration in milliseconds.
func RecordTrainingDuration(durationMs float64) {
	globalManager.trainingDuration.Observe(durationMs)
}

// UpdateCatalogSize sets the loaded catalog size.
func UpdateCatalogSize(size int) {
	globalManager.catalogSize.Set(float64(size))
}

// UpdateModelClasses sets the learned label-space size.
func UpdateModelClasses(count int) {
	globalManager.modelClasses.Set(float64(count))
}

// UpdateHistoryEntries sets the current history pair count.
func UpdateHistoryEntries(count int64) {
	globalManager.historyEntries.Set(float64(count))
}

// Snapshot gathers the registry and flattens single-sample families into a
// name -> value map. Counters and gauges only; histograms contribute their
// sample count under "<name>_count".
func Snapshot() (map[string]float64, error) {
	return globalManager.Snapshot()
}

// Snapshot gathers this manager's registry.
func (m *Manager) Snapshot() (map[string]float64, error) {
	families, err := m.gatherer.Gather()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatherFailed, err)
	}

	out := make(map[string]float64, len(families))
	for _, fam := range families {
		for _, metric := range fam.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				out[fam.GetName()] = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				out[fam.GetName()] = metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				out[fam.GetName()+"_count"] = float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	return out, nil
}

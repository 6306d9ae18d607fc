package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManager(t *testing.T) {
	Convey("Given a metrics manager on its own registry", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(
			WithNamespace("test"),
			WithSubsystem("recommender"),
			WithPrometheusRegistry(reg, reg),
		)

		Convey("When recording recommendation flow events", func() {
			m.predictions.Inc()
			m.predictions.Inc()
			m.duplicatesSuppressed.Inc()
			m.accepted.Inc()
			m.catalogSize.Set(7)
			m.trainingDuration.Observe(3.5)

			snapshot, err := m.Snapshot()

			Convey("Then the snapshot reflects the recorded values", func() {
				So(err, ShouldBeNil)
				So(snapshot["test_recommender_predictions_total"], ShouldEqual, 2)
				So(snapshot["test_recommender_duplicates_suppressed_total"], ShouldEqual, 1)
				So(snapshot["test_recommender_recommendations_accepted_total"], ShouldEqual, 1)
				So(snapshot["test_recommender_catalog_size"], ShouldEqual, 7)
				So(snapshot["test_recommender_training_duration_milliseconds_count"], ShouldEqual, 1)
			})
		})

		Convey("When nothing has been recorded", func() {
			snapshot, err := m.Snapshot()

			Convey("Then all counters gather as zero", func() {
				So(err, ShouldBeNil)
				So(snapshot["test_recommender_predictions_total"], ShouldEqual, 0)
				So(snapshot["test_recommender_recommendations_rejected_total"], ShouldEqual, 0)
			})
		})
	})

	Convey("Given the package-level helpers", t, func() {
		Convey("When recording through them", func() {
			before, err := Snapshot()
			So(err, ShouldBeNil)

			RecordPrediction()
			RecordDuplicateSuppressed()
			RecordRejected()
			UpdateHistoryEntries(3)

			after, err := Snapshot()

			Convey("Then the global registry advances", func() {
				So(err, ShouldBeNil)
				So(after["phonepick_recommender_predictions_total"], ShouldEqual, before["phonepick_recommender_predictions_total"]+1)
				So(after["phonepick_recommender_duplicates_suppressed_total"], ShouldEqual, before["phonepick_recommender_duplicates_suppressed_total"]+1)
				So(after["phonepick_recommender_recommendations_rejected_total"], ShouldEqual, before["phonepick_recommender_recommendations_rejected_total"]+1)
				So(after["phonepick_recommender_history_entries"], ShouldEqual, 3)
			})
		})
	})
}

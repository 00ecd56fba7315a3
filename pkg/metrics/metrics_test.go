package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func scrape(m *Manager) string {
	path := filepath.Join(os.TempDir(), "qperf-metrics-test.prom")
	defer func() { _ = os.Remove(path) }()
	So(m.WriteTextfile(path), ShouldBeNil)
	b, err := os.ReadFile(path)
	So(err, ShouldBeNil)
	return string(b)
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager()

			Convey("Then it should own a private registry", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Registry(), ShouldNotBeNil)
			})
		})

		Convey("When creating two managers", func() {
			Convey("Then their registrations do not collide", func() {
				So(func() {
					NewManager()
					NewManager()
				}, ShouldNotPanic)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("batch"),
				WithHistogramBuckets([]float64{0.1, 1}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.RecordDocument()

			Convey("Then names and labels follow the options", func() {
				So(manager.Registry(), ShouldEqual, registry)
				out := scrape(manager)
				So(out, ShouldContainSubstring, `test_batch_documents_parsed_total{env="test"} 1`)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a fresh manager", t, func() {
		m := NewManager()

		Convey("When recording a full run", func() {
			m.RecordDocument()
			m.RecordDocument()
			m.RecordRows(10, 7, 5, 1, 1)
			m.UpdateShape(3, 4)
			m.RecordSuccess(250*time.Millisecond, time.Unix(1700000000, 0))
			m.RecordFailure(StageEventLog)

			Convey("Then every metric is exposed", func() {
				out := scrape(m)
				for _, want := range []string{
					"qperf_run_documents_parsed_total 2",
					"qperf_run_event_rows_read_total 10",
					"qperf_run_event_rows_kept_total 7",
					"qperf_run_event_rows_counted_total 5",
					"qperf_run_event_rows_skipped_total 1",
					"qperf_run_event_rows_unresolved_total 1",
					"qperf_run_grid_rounds 3",
					"qperf_run_quizzers 4",
					"qperf_run_duration_seconds_count 1",
					"qperf_run_last_success_timestamp_seconds 1.7e+09",
					`qperf_run_failures_total{stage="event_log"} 1`,
				} {
					So(out, ShouldContainSubstring, want)
				}
			})
		})
	})

	Convey("Given a nil manager", t, func() {
		var m *Manager

		Convey("Then recording is a no-op", func() {
			So(func() {
				m.RecordDocument()
				m.RecordRows(1, 1, 1, 0, 0)
				m.UpdateShape(1, 1)
				m.RecordSuccess(time.Second, time.Now())
				m.RecordFailure(StageConfig)
			}, ShouldNotPanic)
			So(m.WriteTextfile("/unused"), ShouldBeNil)
		})
	})

	Convey("Given an unwritable textfile path", t, func() {
		m := NewManager()
		err := m.WriteTextfile(filepath.Join(os.TempDir(), "missing-dir-qperf", "x", "out.prom"))

		Convey("Then writing fails with ErrWriteFailed", func() {
			So(err, ShouldNotBeNil)
			So(strings.Contains(err.Error(), ErrWriteFailed.Error()), ShouldBeTrue)
		})
	})
}

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline stages used as the "stage" label on failures.
const (
	StageConfig    = "config"
	StageDocuments = "documents"
	StageEventLog  = "event_log"
	StageReport    = "report"
)

// Manager owns the metrics of one process. A nil *Manager is valid and
// records nothing.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         *prometheus.Registry

	documentsParsed prometheus.Counter
	rowsRead        prometheus.Counter
	rowsKept        prometheus.Counter
	rowsCounted     prometheus.Counter
	rowsSkipped     prometheus.Counter
	rowsUnresolved  prometheus.Counter
	quizzers        prometheus.Gauge
	gridRounds      prometheus.Gauge
	runDuration     prometheus.Histogram
	lastSuccess     prometheus.Gauge
	failures        *prometheus.CounterVec
}

// NewManager creates a metrics manager. Without WithPrometheusRegistry a
// private registry is used, so default Go runtime collectors are absent.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "qperf",
		subsystem:        "run",
		histogramBuckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		constLabels:      map[string]string{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.documentsParsed = m.counter("documents_parsed_total", "Answer-key documents parsed")
	m.rowsRead = m.counter("event_rows_read_total", "Event log data rows read")
	m.rowsKept = m.counter("event_rows_kept_total", "Event rows that passed the event filter")
	m.rowsCounted = m.counter("event_rows_counted_total", "Event rows that incremented a count matrix")
	m.rowsSkipped = m.counter("event_rows_skipped_total", "Event rows skipped for lack of a question type")
	m.rowsUnresolved = m.counter("event_rows_unresolved_total", "Event rows that needed a fallback quizzer or type lookup")
	m.quizzers = m.gauge("quizzers", "Distinct quizzers in the last report")
	m.gridRounds = m.gauge("grid_rounds", "Rounds in the last type grid")
	m.lastSuccess = m.gauge("last_success_timestamp_seconds", "Unix time of the last successful run")

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "duration_seconds",
		Help:        "Wall time of a full run",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.failures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "failures_total",
		Help:        "Fatal run failures by pipeline stage",
		ConstLabels: m.constLabels,
	}, []string{"stage"})
}

// RecordDocument counts one parsed answer-key document.
func (m *Manager) RecordDocument() {
	if m == nil {
		return
	}
	m.documentsParsed.Inc()
}

// RecordRows records the row counts of one aggregation pass.
func (m *Manager) RecordRows(read, kept, counted, skipped, unresolved int) {
	if m == nil {
		return
	}
	m.rowsRead.Add(float64(read))
	m.rowsKept.Add(float64(kept))
	m.rowsCounted.Add(float64(counted))
	m.rowsSkipped.Add(float64(skipped))
	m.rowsUnresolved.Add(float64(unresolved))
}

// UpdateShape records the size of the grid and the roster.
func (m *Manager) UpdateShape(gridRounds, quizzers int) {
	if m == nil {
		return
	}
	m.gridRounds.Set(float64(gridRounds))
	m.quizzers.Set(float64(quizzers))
}

// RecordSuccess observes the run duration and stamps the success time.
func (m *Manager) RecordSuccess(d time.Duration, now time.Time) {
	if m == nil {
		return
	}
	m.runDuration.Observe(d.Seconds())
	m.lastSuccess.Set(float64(now.Unix()))
}

// RecordFailure counts a fatal failure in stage.
func (m *Manager) RecordFailure(stage string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(stage).Inc()
}

// Registry returns the registry backing this manager.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every metric to path in the text exposition format
// read by node_exporter's textfile collector. The file is replaced
// atomically.
func (m *Manager) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

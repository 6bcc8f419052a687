// Package observability wires structured logging and Prometheus metrics for
// the dealiasing/superobing service, following the teacher's separation of
// a Metrics registry type from a slog-based logger constructor.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// dealiasing/superobing pipeline.
type Metrics struct {
	FilesProcessed prometheus.Counter
	FilesFailed    prometheus.Counter

	StageWarnings *prometheus.CounterVec // labels: stage={dealias,superob}
	StageErrors   *prometheus.CounterVec // labels: stage={dealias,superob}
	StageDuration *prometheus.HistogramVec

	DealiasingEnabled prometheus.Gauge
	SuperobingEnabled prometheus.Gauge

	SummariesPublished prometheus.Counter
	PublishErrors      prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FilesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "accord",
			Name:      "files_processed_total",
			Help:      "Total polar volumes processed to completion.",
		}),
		FilesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "accord",
			Name:      "files_failed_total",
			Help:      "Total polar volumes aborted by a fatal stage error.",
		}),
		StageWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "accord",
			Name:      "stage_warnings_total",
			Help:      "Warnings raised per processing stage.",
		}, []string{"stage"}),
		StageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "accord",
			Name:      "stage_errors_total",
			Help:      "Fatal errors raised per processing stage.",
		}, []string{"stage"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "accord",
			Name:      "stage_duration_seconds",
			Help:      "Wall-clock duration of a single stage run on one volume.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
		DealiasingEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "accord",
			Name:      "dealiasing_enabled",
			Help:      "1 when the dealiasing stage is enabled, 0 otherwise.",
		}),
		SuperobingEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "accord",
			Name:      "superobing_enabled",
			Help:      "1 when the superobing stage is enabled, 0 otherwise.",
		}),
		SummariesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "accord",
			Name:      "summaries_published_total",
			Help:      "Total processing-summary events published to Kafka.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "accord",
			Name:      "publish_errors_total",
			Help:      "Total failures publishing a processing-summary event.",
		}),
	}

	prometheus.MustRegister(
		m.FilesProcessed,
		m.FilesFailed,
		m.StageWarnings,
		m.StageErrors,
		m.StageDuration,
		m.DealiasingEnabled,
		m.SuperobingEnabled,
		m.SummariesPublished,
		m.PublishErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with an unregistered instance,
// avoiding "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FilesProcessed:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "accord", Name: "files_processed_total"}),
		FilesFailed:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "accord", Name: "files_failed_total"}),
		StageWarnings:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "accord", Name: "stage_warnings_total"}, []string{"stage"}),
		StageErrors:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "accord", Name: "stage_errors_total"}, []string{"stage"}),
		StageDuration:       prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "accord", Name: "stage_duration_seconds"}, []string{"stage"}),
		DealiasingEnabled:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "accord", Name: "dealiasing_enabled"}),
		SuperobingEnabled:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "accord", Name: "superobing_enabled"}),
		SummariesPublished:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "accord", Name: "summaries_published_total"}),
		PublishErrors:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "accord", Name: "publish_errors_total"}),
	}
}

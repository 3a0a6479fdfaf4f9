package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	snapshotsStored *prometheus.CounterVec
	instruments     *prometheus.GaugeVec
	errorsTotal     *prometheus.CounterVec
	lastBreadth     prometheus.Gauge
	latency         *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		snapshotsStored: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "breadthpulse_snapshots_stored_total",
				Help: "Total number of daily snapshots stored per backend",
			},
			[]string{"backend", "date"},
		),
		instruments: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "breadthpulse_instruments",
				Help: "Instruments observed and failed in the latest run",
			},
			[]string{"state"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "breadthpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastBreadth: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "breadthpulse_last_breadth_pct",
				Help: "Most recently computed market breadth percentage",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "breadthpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSnapshotStored records a stored daily snapshot.
func (r *Recorder) RecordSnapshotStored(backend, date string) {
	r.snapshotsStored.WithLabelValues(backend, date).Inc()
}

// RecordInstruments records how many instruments the latest run covered.
func (r *Recorder) RecordInstruments(observed, failed int) {
	r.instruments.WithLabelValues("observed").Set(float64(observed))
	r.instruments.WithLabelValues("failed").Set(float64(failed))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastBreadth records the latest market breadth percentage.
func (r *Recorder) RecordLastBreadth(pct float64) {
	r.lastBreadth.Set(pct)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

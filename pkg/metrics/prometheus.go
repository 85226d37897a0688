package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	scansTotal       *prometheus.CounterVec
	situationsFound  *prometheus.GaugeVec
	significantFound *prometheus.GaugeVec
	errorsTotal      *prometheus.CounterVec
	scanDuration     *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		scansTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edgescan_scans_total",
				Help: "Total number of completed instrument scans",
			},
			[]string{"symbol"},
		),
		situationsFound: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "edgescan_situations",
				Help: "Situations detected in the latest scan of a symbol",
			},
			[]string{"symbol"},
		),
		significantFound: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "edgescan_significant_situations",
				Help: "Significant situations in the latest scan of a symbol",
			},
			[]string{"symbol"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edgescan_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		scanDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "edgescan_scan_duration_seconds",
				Help:    "Duration of full instrument scans in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"symbol"},
		),
	}
}

// RecordScan records a completed scan.
func (r *Recorder) RecordScan(symbol string) {
	r.scansTotal.WithLabelValues(symbol).Inc()
}

// RecordSituations records detection counts for the latest scan of a symbol.
func (r *Recorder) RecordSituations(symbol string, total, significant int) {
	r.situationsFound.WithLabelValues(symbol).Set(float64(total))
	r.significantFound.WithLabelValues(symbol).Set(float64(significant))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordScanDuration records scan latency in seconds.
func (r *Recorder) RecordScanDuration(symbol string, seconds float64) {
	r.scanDuration.WithLabelValues(symbol).Observe(seconds)
}

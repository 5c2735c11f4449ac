package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the server's prometheus collectors.
type Metrics struct {
	Uploads     *prometheus.CounterVec
	Analyses    *prometheus.CounterVec
	Duration    prometheus.Histogram
	DroppedRows prometheus.Counter
	Sessions    prometheus.Gauge
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Uploads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tradestats_uploads_total",
			Help: "Ledger uploads by outcome.",
		}, []string{"status"}),
		Analyses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tradestats_analyses_total",
			Help: "Analyses computed by P&L mode.",
		}, []string{"mode"}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "tradestats_analysis_duration_seconds",
			Help:    "Time spent filtering and analysing a session.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		DroppedRows: f.NewCounter(prometheus.CounterOpts{
			Name: "tradestats_dropped_rows_total",
			Help: "Ledger rows dropped at ingestion (blank or without a valid date).",
		}),
		Sessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "tradestats_sessions",
			Help: "Sessions currently loaded.",
		}),
	}
}

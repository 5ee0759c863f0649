// Package metrics declares the prometheus collectors shared across the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RowsLoaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_rows_loaded_total",
			Help: "Total number of title rows read from tabular sources",
		},
	)

	RowsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_rows_dropped_total",
			Help: "Total number of title rows removed by the cleaner",
		},
	)

	LoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_load_errors_total",
			Help: "Total number of failed dataset loads",
		},
		[]string{"kind"}, // "not_found", "empty", "malformed", "io"
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "Duration of filter and aggregation operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "backend"},
	)

	ChartRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chart_render_total",
			Help: "Total number of chart render attempts",
		},
		[]string{"kind", "result"}, // result: "ok", "error"
	)

	ImportedRows = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_rows_inserted_total",
			Help: "Total number of title rows inserted by import runs",
		},
	)
)

// ObserveAnalysis records how long an analysis operation took.
func ObserveAnalysis(operation, backend string, start time.Time) {
	AnalysisDuration.WithLabelValues(operation, backend).Observe(time.Since(start).Seconds())
}

// RecordRender counts a chart render attempt.
func RecordRender(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ChartRenders.WithLabelValues(kind, result).Inc()
}

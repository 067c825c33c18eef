// Package metrics provides Prometheus metrics for intake and reconciliation
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealerops_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dealerops_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Intake metrics
	DocumentsExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealerops_documents_extracted_total",
			Help: "Total number of documents run through extraction",
		},
		[]string{"outcome"},
	)

	VINsExtracted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dealerops_vins_extracted_total",
			Help: "Total number of VINs recovered from documents",
		},
	)

	ExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dealerops_extraction_duration_seconds",
			Help:    "Time taken to extract a batch from one document",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	CarsCommitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dealerops_cars_committed_total",
			Help: "Total number of inventory rows created from intake batches",
		},
	)

	// Reconcile metrics
	ViewsBuilt = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dealerops_views_built_total",
			Help: "Total number of comprehensive vehicle views built",
		},
	)

	SourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealerops_reconcile_source_failures_total",
			Help: "Total number of failed sub-source fetches during reconciliation",
		},
		[]string{"source"},
	)

	ReconcileDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dealerops_reconcile_duration_seconds",
			Help:    "Time taken to build a comprehensive vehicle view",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// RecordExtraction records the outcome of one extraction pass.
func RecordExtraction(vins int, duration time.Duration) {
	outcome := "ok"
	if vins == 0 {
		outcome = "no_vins"
	}
	DocumentsExtracted.WithLabelValues(outcome).Inc()
	VINsExtracted.Add(float64(vins))
	ExtractionDuration.Observe(duration.Seconds())
}

// RecordSourceFailure records a failed reconcile sub-source fetch.
func RecordSourceFailure(source string) {
	SourceFailures.WithLabelValues(source).Inc()
}

// RecordView records a completed comprehensive view.
func RecordView(duration time.Duration) {
	ViewsBuilt.Inc()
	ReconcileDuration.Observe(duration.Seconds())
}

// RecordRequest records one served HTTP request.
func RecordRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

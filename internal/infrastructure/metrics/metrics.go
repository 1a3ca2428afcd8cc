package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Admin-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "augeo",
			Subsystem: "admin_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "augeo",
			Subsystem: "admin_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	// Media upload lifecycle counter
	MediaUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "augeo",
			Subsystem: "admin_api",
			Name:      "media_uploads_total",
			Help:      "Media upload lifecycle events by media type and status",
		},
		[]string{"media_type", "status"},
	)

	// Scan result counter
	MediaScanResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "augeo",
			Subsystem: "admin_api",
			Name:      "media_scan_results_total",
			Help:      "Content scan verdicts",
		},
		[]string{"result"},
	)

	// Email failure counter
	EmailFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "augeo",
			Subsystem: "admin_api",
			Name:      "email_failures_total",
			Help:      "Notification emails that exhausted their retries",
		},
		[]string{"kind"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordUpload records a media upload lifecycle event
func RecordUpload(mediaType, status string) {
	MediaUploadsTotal.WithLabelValues(mediaType, status).Inc()
}

// RecordScanResult records a scan verdict
func RecordScanResult(result string) {
	MediaScanResultsTotal.WithLabelValues(result).Inc()
}

// RecordEmailFailure records a notification delivery failure
func RecordEmailFailure(kind string) {
	EmailFailuresTotal.WithLabelValues(kind).Inc()
}

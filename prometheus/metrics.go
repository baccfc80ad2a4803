package prometheus

import (
	"time"

	"github.com/Shalinisinha22/Ewa-admin/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	LoginCounter       prometheus.Counter
	AuthErrorsCounter  prometheus.Counter
	ForbiddenCounter   prometheus.Counter

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Resource operation metrics
	ResourceOperationsCounter prometheus.CounterVec

	// Upload metrics
	UploadCounter       prometheus.Counter
	UploadErrorsCounter prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	prefix := cfg.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	LoginCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_login_attempts_total",
			Help: "Total number of login attempts",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
	)

	ForbiddenCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_forbidden_total",
			Help: "Total number of authorization denials",
		},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	ResourceOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_resource_operations_total",
			Help: "Total number of resource operations",
		},
		[]string{"resource", "operation"},
	)

	UploadCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_uploads_total",
			Help: "Total number of image uploads",
		},
	)

	UploadErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_upload_errors_total",
			Help: "Total number of failed image uploads",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordResourceOperation increments the counter for one resource operation
func RecordResourceOperation(resource, operation string) {
	ResourceOperationsCounter.WithLabelValues(resource, operation).Inc()
}

package prometheus

import (
	"strconv"
	"time"

	"tradebook-service/pkg/config"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	LoginCounter     prometheus.Counter
	RegisterCounter  prometheus.Counter
	AuthErrorCounter prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Domain operation metrics
	TradeOperationsCounter    prometheus.CounterVec
	PoolingOperationsCounter  prometheus.CounterVec
	DropdownOperationsCounter prometheus.CounterVec
	ResetOperationsCounter    prometheus.CounterVec

	// Submission export metrics
	SubmissionExportCounter prometheus.CounterVec

	// Guided tour metrics
	TourActionsCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(appConfig *config.Config) {
	prefix := appConfig.Metrics.Prefix

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
			Name: prefix + "_login_total",
			Help: "Total number of login attempts",
		},
	)

	RegisterCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_register_total",
			Help: "Total number of admin registrations",
		},
	)

	AuthErrorCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	TradeOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_trade_operations_total",
			Help: "Total number of trade operations",
		},
		[]string{"operation"},
	)

	PoolingOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_pooling_operations_total",
			Help: "Total number of pooling schedule operations",
		},
		[]string{"operation"},
	)

	DropdownOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_dropdown_operations_total",
			Help: "Total number of dropdown option operations",
		},
		[]string{"operation"},
	)

	ResetOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_reset_operations_total",
			Help: "Total number of weekly reset operations",
		},
		[]string{"operation"},
	)

	SubmissionExportCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_submission_exports_total",
			Help: "Total number of submission exports",
		},
		[]string{"format"},
	)

	TourActionsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_tour_actions_total",
			Help: "Total number of guided tour actions",
		},
		[]string{"action"},
	)
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			method := c.Request().Method
			path := c.Path()
			status := strconv.Itoa(c.Response().Status)

			HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
			HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration)

			return err
		}
	}
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordAuthError increments the counter for a class of authentication failure
func RecordAuthError(errorType string) {
	AuthErrorCounter.WithLabelValues(errorType).Inc()
}

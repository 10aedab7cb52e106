package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ledger"

// HTTP metrics
var (
	// RequestCounter counts all HTTP requests with labels
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDurationHistogram records request duration in seconds
	RequestDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// StatusCodeCategoryCounter with detailed labels
	StatusCodeCategoryCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_status_category_total",
			Help:      "Total number of responses by status category (2xx, 3xx, 4xx, 5xx)",
		},
		[]string{"category", "method", "path"},
	)
)

// Ledger metrics
var (
	// DBOperationDuration records how long store operations take
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_operation_duration_seconds",
			Help:      "Duration of database operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	EntityOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entity_operations_total",
			Help:      "Total number of create/update/delete operations per entity",
		},
		[]string{"entity", "operation"},
	)

	ValidationFailuresCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchase_validation_failures_total",
			Help:      "Total number of rejected purchase or product writes by reason",
		},
		[]string{"reason"},
	)

	OwnershipDenialsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ownership_denials_total",
			Help:      "Total number of accesses to records owned by someone else",
		},
		[]string{"entity"},
	)

	RemindersCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_total",
			Help:      "Total number of payment reminders by channel and result",
		},
		[]string{"channel", "result"},
	)

	ReminderRunsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_runs_total",
			Help:      "Total number of pending payment checks",
		},
		[]string{"result"},
	)
)

// Auth metrics
var (
	AuthAttemptsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Total number of register/login attempts by result",
		},
		[]string{"operation", "result"},
	)

	// ActiveTokensGauge is incremented on login and decremented on logout
	ActiveTokensGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "auth_active_tokens",
			Help:      "Number of tokens handed out and not logged out",
		},
	)
)

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		DBOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
	}
}

// RecordEntityOperation counts a successful write
func RecordEntityOperation(entity, operation string) {
	EntityOperationsCounter.WithLabelValues(entity, operation).Inc()
}

// RecordValidationFailure counts a rejected write
func RecordValidationFailure(reason string) {
	ValidationFailuresCounter.WithLabelValues(reason).Inc()
}

// RecordOwnershipDenial counts a fail-quiet denial
func RecordOwnershipDenial(entity string) {
	OwnershipDenialsCounter.WithLabelValues(entity).Inc()
}

// RecordReminder counts one delivery attempt
func RecordReminder(channel string, err error) {
	result := "sent"
	if err != nil {
		result = "failed"
	}
	RemindersCounter.WithLabelValues(channel, result).Inc()
}

// RecordReminderRun counts one pending payment check
func RecordReminderRun(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ReminderRunsCounter.WithLabelValues(result).Inc()
}

// RecordAuthAttempt counts a register or login attempt
func RecordAuthAttempt(operation, result string) {
	AuthAttemptsCounter.WithLabelValues(operation, result).Inc()
}

func statusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	}
	return ""
}

// Middleware creates an Echo middleware function that records HTTP request metrics
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			method := c.Request().Method
			path := c.Path()
			statusStr := strconv.Itoa(status)

			RequestCounter.WithLabelValues(method, path, statusStr).Inc()
			RequestDurationHistogram.WithLabelValues(method, path, statusStr).Observe(time.Since(start).Seconds())
			if category := statusCategory(status); category != "" {
				StatusCodeCategoryCounter.WithLabelValues(category, method, path).Inc()
			}

			return err
		}
	}
}

// GetPrometheusHandler returns an HTTP handler for exposing Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

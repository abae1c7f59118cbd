package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics держит все Prometheus коллекторы сервиса
type Metrics struct {
	// HTTP метрики
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// Метрики workflow-сессий
	SessionsStarted   prometheus.Counter
	SessionsSubmitted prometheus.Counter
	SessionsCancelled prometheus.Counter
	ConflictsDetected *prometheus.CounterVec
}

// New создает и регистрирует коллекторы метрик
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		RequestsInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests currently being served",
			ConstLabels: constLabels,
		}),

		SessionsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_sessions_started_total",
			Help:        "Total number of booking workflow sessions started",
			ConstLabels: constLabels,
		}),

		SessionsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_sessions_submitted_total",
			Help:        "Total number of booking drafts submitted",
			ConstLabels: constLabels,
		}),

		SessionsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_sessions_cancelled_total",
			Help:        "Total number of booking workflow sessions cancelled",
			ConstLabels: constLabels,
		}),

		ConflictsDetected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_conflicts_detected_total",
			Help:        "Total number of booking conflicts detected, by kind and source",
			ConstLabels: constLabels,
		}, []string{"kind", "source"}),
	}
}

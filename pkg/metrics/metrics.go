// Package metrics содержит Prometheus метрики сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics коллекция Prometheus метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ReminderTicksTotal        prometheus.Counter
	RemindersSentTotal        prometheus.Counter
	ReminderSendFailuresTotal prometheus.Counter
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		ReminderTicksTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "reminder_ticks_total",
			Help:        "Total number of reminder scheduler ticks",
			ConstLabels: constLabels,
		}),

		RemindersSentTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "reminders_sent_total",
			Help:        "Total number of reminders sent",
			ConstLabels: constLabels,
		}),

		ReminderSendFailuresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "reminder_send_failures_total",
			Help:        "Total number of failed reminder deliveries",
			ConstLabels: constLabels,
		}),
	}
}

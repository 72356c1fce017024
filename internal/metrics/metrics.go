package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, path pattern and status.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procurement_http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDuration observes HTTP request latency by method and path pattern.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "procurement_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// QuotesSubmittedTotal counts quotes accepted by the lifecycle engine.
	QuotesSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "procurement_quotes_submitted_total",
			Help: "Total number of quotes submitted.",
		},
	)

	// AwardsTotal counts award decisions that produced an order.
	AwardsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "procurement_awards_total",
			Help: "Total number of awarded demands.",
		},
	)

	// AbnormalFlagsTotal counts abnormal flags by entity type (quote or order).
	AbnormalFlagsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procurement_abnormal_flags_total",
			Help: "Total number of abnormal flags raised.",
		},
		[]string{"entity"},
	)

	// NotificationsTotal counts lifecycle notifications by event type.
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procurement_notifications_total",
			Help: "Total number of lifecycle notifications dispatched.",
		},
		[]string{"event"},
	)
)

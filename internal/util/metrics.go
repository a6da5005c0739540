package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatTurnsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_turns_total",
		Help: "Total number of persisted chat turns",
	})

	ChatTurnsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_turns_failed_total",
		Help: "Total number of failed chat turns",
	}, []string{"reason"})

	CompletionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "completion_latency_seconds",
		Help:    "Latency of completion provider calls",
		Buckets: prometheus.DefBuckets,
	})

	CompletionFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "completion_fallbacks_total",
		Help: "Total number of provider responses degraded to the fallback reply",
	})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Total number of failed order creations",
	}, []string{"reason"})

	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "login_attempts_total",
		Help: "Total number of login attempts",
	}, []string{"outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)

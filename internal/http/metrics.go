package http

import (
	"log-analyzer/internal/shared/metrics"
)

const (
	labelMethod = "method"
	labelRoute  = "route"
	labelStatus = "status"
)

var (
	metricHTTPRequestsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "requests_total",
		},
		[]string{labelMethod, labelRoute, labelStatus, metrics.FieldErrorCode},
	)

	// analyses run per request, so latency tracks the size of the log behind the route
	metricHTTPRequestDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "request_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{labelMethod, labelRoute, labelStatus, metrics.FieldErrorCode},
	)
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_http_requests_total",
		Help: "HTTP requests by method, path and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fulfillment_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	StatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_status_transitions_total",
		Help: "Unit status transitions applied, by target status",
	}, []string{"target"})

	ContainerAssignmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_container_assignments_total",
		Help: "Container assignments, by container kind",
	}, []string{"kind"})
)

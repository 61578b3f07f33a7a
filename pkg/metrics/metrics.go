package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "notes", Name: "http_requests_total", Help: "Number of HTTP requests by method, route and status."},
		[]string{"method", "route", "status"},
	)
	AssistRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "notes", Name: "assist_requests_total", Help: "Number of AI assist calls by operation and outcome."},
		[]string{"operation", "outcome"},
	)
	AssistLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "notes", Name: "assist_request_duration_seconds", Help: "Provider round trip time per assist operation.", Buckets: prometheus.DefBuckets},
		[]string{"operation"},
	)
	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "notes", Name: "store_errors_total", Help: "Unexpected note store failures by operation."},
		[]string{"operation"},
	)
)

// Assist outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeBlocked  = "blocked"
	OutcomeError    = "error"
	OutcomeInvalid  = "invalid"
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(AssistRequests)
	reg.MustRegister(AssistLatency)
	reg.MustRegister(StoreErrors)
}

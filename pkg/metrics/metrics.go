// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// BatchDuration tracks end-to-end duration of dashboard query batches.
	BatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "query_batch_duration_seconds",
			Help:    "Query batch execution duration in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"status"},
	)

	// BatchQueriesTotal tracks individual queries executed through batches.
	BatchQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_batch_queries_total",
			Help: "Total queries executed through the batch executor",
		},
		[]string{"status"},
	)

	// AgentRequestDuration tracks assistant backend call duration.
	AgentRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agent_request_duration_seconds",
			Help:    "Assistant backend request duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"provider", "status"},
	)

	// ConversationTurnsTotal tracks turns appended to conversation threads.
	ConversationTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversation_turns_total",
			Help: "Total conversation turns appended",
		},
		[]string{"persona", "role"},
	)

	// RegisteredQueries tracks the number of entries in the query registry.
	RegisteredQueries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "registered_queries",
			Help: "Number of entries in the query registry",
		},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordBatch records metrics for one batch execution.
func RecordBatch(status string, duration float64, queries int) {
	BatchDuration.WithLabelValues(status).Observe(duration)
	BatchQueriesTotal.WithLabelValues(status).Add(float64(queries))
}

// RecordAgentRequest records metrics for one assistant backend call.
func RecordAgentRequest(provider, status string, duration float64) {
	AgentRequestDuration.WithLabelValues(provider, status).Observe(duration)
}

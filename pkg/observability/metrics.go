// Package observability provides Prometheus metrics for the response
// finalization middleware.
package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// ResponsesTotal counts finalized responses by status class.
	ResponsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbound_responses_total",
			Help: "Finalized responses",
		},
		[]string{"status"},
	)

	// NotModifiedTotal counts responses downgraded to 304 during
	// conditional GET handling.
	NotModifiedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "outbound_not_modified_total",
			Help: "Conditional GET downgrades",
		},
	)

	// StoreEventsTotal counts response store events (hit, miss, save).
	StoreEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbound_store_events_total",
			Help: "Response store events",
		},
		[]string{"event"},
	)
)

func init() {
	prometheus.MustRegister(
		ResponsesTotal,
		NotModifiedTotal,
		StoreEventsTotal,
	)
}

package services

import "github.com/prometheus/client_golang/prometheus"

var (
	upstreamAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leetstats_upstream_attempts_total",
			Help: "LeetCode API attempts, by outcome",
		},
		[]string{"outcome"},
	)
	lookupResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leetstats_lookups_total",
			Help: "Profile lookups, by result",
		},
		[]string{"result"},
	)
	assistantRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leetstats_assistant_requests_total",
			Help: "Questions forwarded to the language model, by kind and result",
		},
		[]string{"kind", "result"},
	)
)

// RegisterMetrics registers the service collectors. Call once from main.go.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(upstreamAttempts, lookupResults, assistantRequests)
}

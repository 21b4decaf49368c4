// ABOUTME: Prometheus collectors for the hashing HTTP API.
// ABOUTME: Registered with the default registry at init and exposed on /metrics.
package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestsTotal counts API requests by endpoint and outcome.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wlhash_requests_total",
			Help: "Total number of hash API requests",
		},
		[]string{"endpoint", "outcome"},
	)

	// HashDuration observes the time spent hashing one graph.
	HashDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wlhash_hash_duration_seconds",
			Help:    "Time spent computing one graph hash",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
	)

	// GraphNodes observes the node count of hashed graphs.
	GraphNodes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wlhash_graph_nodes",
			Help:    "Number of nodes in hashed graphs",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(HashDuration)
	prometheus.MustRegister(GraphNodes)
}

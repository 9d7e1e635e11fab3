// Package metrics defines the Prometheus metrics exported at /metrics.
// Metrics are registered with the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "logitrack"

// LoginAttemptsTotal counts session logins.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TaskTransitionsTotal counts task lifecycle transitions that were applied.
// Labels:
//   - from, to: task statuses (e.g. "pending", "in-progress")
var TaskTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_transitions_total",
		Help:      "Total number of applied task status transitions.",
	},
	[]string{"from", "to"},
)

// TaskTransitionsRejectedTotal counts transitions refused by the state machine.
var TaskTransitionsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_transitions_rejected_total",
		Help:      "Total number of task transitions rejected as illegal.",
	},
	[]string{"from", "to"},
)

// CatalogMutationsTotal counts inventory catalog writes.
// Label:
//   - op: "add", "update", "delete" or "photo"
var CatalogMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_mutations_total",
		Help:      "Total number of inventory catalog mutations, labelled by operation.",
	},
	[]string{"op"},
)

// HTTPRequestDuration observes API request latency.
// Labels:
//   - method: HTTP method
//   - code: response status code
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "code"},
)

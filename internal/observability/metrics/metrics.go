// Package metrics defines and registers all custom Prometheus metrics for the
// hospital portal. It is the single source of truth for metric names, labels
// and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto and exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts calls to the hospital backend.
// Labels:
//   - operation: client operation (e.g. "filter_doctors", "delete_doctor")
//   - outcome: "ok", "failed" (non-2xx or explicit failure), "error" (transport),
//     "rejected" (missing input, no request sent)
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of hospital backend calls, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// BackendRequestDuration measures round-trip time of backend calls that were sent.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of hospital backend calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionResetsTotal counts forced session resets.
// Label:
//   - reason: "landing" (root page visit) or "missing_token" (invariant violation)
var SessionResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resets_total",
		Help:      "Total number of forced session resets, by reason.",
	},
	[]string{"reason"},
)

// LayoutsResolvedTotal counts resolved layouts by variant.
var LayoutsResolvedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "layouts_resolved_total",
		Help:      "Total number of page layouts resolved, by role variant.",
	},
	[]string{"variant"},
)

// StaleResponsesTotal counts backend responses discarded because the session
// changed while they were in flight.
var StaleResponsesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_responses_total",
		Help:      "Total number of backend responses discarded after a session change.",
	},
	[]string{"operation"},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestDuration measures portal API requests.
// Labels:
//   - method, route (echo path template), status
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of portal API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)

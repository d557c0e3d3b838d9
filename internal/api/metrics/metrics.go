// Package metrics defines and registers all custom Prometheus metrics for the
// CRM console. It is the single source of truth for metric names, labels, and
// help strings.
//
// All metrics are registered with the default Prometheus registry through
// promauto when the package is first imported.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm_console"

// ── Backend client metrics ────────────────────────────────────────────────────

// BackendRequestsTotal counts requests sent to the CRM backend.
// Labels:
//   - method: HTTP method (e.g. "GET")
//   - resource: first path segment (e.g. "tickets", "campaigns")
//   - code: response status code, or "error" when no response arrived
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests sent to the CRM backend.",
	},
	[]string{"method", "resource", "code"},
)

// BackendRequestDuration measures backend round trips.
// Labels:
//   - method: HTTP method
//   - resource: first path segment
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests sent to the CRM backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "resource"},
)

// TokenRefreshTotal counts access-token refresh attempts.
// Label:
//   - result: "success" or "failure" (credentials cleared)
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of access-token refresh attempts, by result.",
	},
	[]string{"result"},
)

// ── Domain metrics ────────────────────────────────────────────────────────────

// MembershipChangesTotal counts campaign membership mutations.
// Labels:
//   - operation: "add" or "remove"
//   - result: "applied", "noop" (already in the requested state) or "error"
var MembershipChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "membership_changes_total",
		Help:      "Total number of campaign membership changes, by operation and result.",
	},
	[]string{"operation", "result"},
)

// TicketsCreatedTotal counts tickets submitted through the console.
// Label:
//   - source: "manual" or "call"
var TicketsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_created_total",
		Help:      "Total number of tickets created, by source.",
	},
	[]string{"source"},
)

// ViewFetchErrorsTotal counts failed section fetches while loading a view.
// Labels:
//   - view: view name (e.g. "dashboard")
//   - section: the failed fetch (e.g. "tickets")
var ViewFetchErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_fetch_errors_total",
		Help:      "Total number of failed section fetches, by view and section.",
	},
	[]string{"view", "section"},
)

// ── Infrastructure metrics ────────────────────────────────────────────────────

// DispatchQueueDepth tracks the current number of jobs waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var DispatchQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dispatch_queue_depth",
		Help:      "Current number of jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// DiagnosticsDroppedTotal counts log entries dropped because the diagnostics
// buffer was full.
var DiagnosticsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "diagnostics_dropped_total",
		Help:      "Total number of diagnostics log entries dropped on a full buffer.",
	},
)

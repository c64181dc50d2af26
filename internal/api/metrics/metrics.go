// Package metrics defines and registers all custom Prometheus metrics for the
// agency platform. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry via promauto at package
// init; the /metrics endpoint exposes them alongside the echo HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agency"

// ── Realtime metrics ──────────────────────────────────────────────────────────

// EventsPublishedTotal counts task events delivered to the broadcaster.
// Label:
//   - kind: "task_created", "task_updated", or "task_deleted"
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of task events accepted for broadcast.",
	},
	[]string{"kind"},
)

// EventsDroppedTotal counts task events discarded before delivery.
// Label:
//   - reason: short description of the drop (e.g. "queue_full")
var EventsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dropped_total",
		Help:      "Total number of task events dropped before broadcast.",
	},
	[]string{"reason"},
)

// WSConnectionsActive tracks currently open websocket connections.
var WSConnectionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_connections_active",
		Help:      "Number of websocket connections currently open.",
	},
)

// RoomsActive tracks project rooms with at least one subscriber.
var RoomsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rooms_active",
		Help:      "Number of project rooms with at least one subscriber.",
	},
)

// ── Domain metrics ────────────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created tasks.
// Label:
//   - priority: "low", "medium", or "high"
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by priority.",
	},
	[]string{"priority"},
)

// ProjectsCreatedTotal counts newly created projects.
var ProjectsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created.",
	},
)

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - stage: "login" or "token"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected authentication attempts.",
	},
	[]string{"stage"},
)

// Package metrics defines the custom Prometheus metrics for the community
// events API. It is the single source of truth for metric names, labels, and
// help strings. promauto registers everything with the default registry on
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "community"

// ── Event lifecycle ───────────────────────────────────────────────────────────

// EventTransitionsTotal counts lifecycle changes.
// Label:
//   - action: "created", "updated", "approved", "rejected" or "deleted"
var EventTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_transitions_total",
		Help:      "Total number of event lifecycle changes, by action.",
	},
	[]string{"action"},
)

// ── Registrations ─────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts by outcome.
// Label:
//   - result: "registered", "cancelled", or the rejection code (e.g. "event_full")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// ── Auth ──────────────────────────────────────────────────────────────────────

// AuthFailuresTotal counts rejected requests at the auth boundary.
// Label:
//   - code: "missing_token", "invalid_token", "expired_token", "invalid_credentials", "forbidden", …
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of authentication and authorization failures, by code.",
	},
	[]string{"code"},
)

// ── Activity dispatcher ───────────────────────────────────────────────────────

// ActivityQueueDepth tracks the number of activity records waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity records pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityDroppedTotal counts records discarded because a worker channel was full.
var ActivityDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dropped_total",
		Help:      "Total number of activity records dropped on a full queue.",
	},
)

// ActivityDeliveryDuration measures how long one sink takes to accept a record.
// Label:
//   - sink: "store" or "rabbitmq"
var ActivityDeliveryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_delivery_duration_seconds",
		Help:      "Duration of activity delivery to a sink.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"sink"},
)

// ActivityDeliveryErrorsTotal counts failed deliveries per sink.
var ActivityDeliveryErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_delivery_errors_total",
		Help:      "Total number of failed activity deliveries, by sink.",
	},
	[]string{"sink"},
)

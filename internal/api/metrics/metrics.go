// Package metrics defines and registers all custom Prometheus metrics for the
// forum API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "forum"

// ── Authentication ────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts strategy resolutions.
// Labels:
//   - strategy: "credentials", "token" or "none"
//   - outcome: "authenticated" or the rejection reason (e.g. "invalid_token")
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by strategy and outcome.",
	},
	[]string{"strategy", "outcome"},
)

// GateDecisionsTotal counts authorization gate decisions.
// Label:
//   - decision: "authorized", "rejected", "forbidden", "inactive" or "error"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of authorization gate decisions.",
	},
	[]string{"decision"},
)

// TokensIssuedTotal counts bearer tokens minted.
// Label:
//   - reason: "login" or "register"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued.",
	},
	[]string{"reason"},
)

// RateLimitedTotal counts requests refused by the login rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests refused by the rate limiter.",
	},
)

// ── Activity log ──────────────────────────────────────────────────────────────

// ActivityQueueDepth tracks pending audit records per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of audit records pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityDroppedTotal counts audit records dropped because a queue was full.
var ActivityDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dropped_total",
		Help:      "Total number of audit records dropped because the worker queue was full.",
	},
)

// Package metrics defines and registers all custom Prometheus metrics for the
// NutriLens API. It is the single source of truth for metric names, labels and
// help strings.
//
// Collectors register with the default Prometheus registry on import through
// promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nutrilens"

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts that reached the store.
// Label:
//   - result: "created" or "conflict"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "accepted" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Analysis metrics ──────────────────────────────────────────────────────────

// AnalysesTotal counts analysis requests.
// Label:
//   - result: "ok", "fallback", "invalid_input", "quota", "upstream_error"
var AnalysesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Total number of food analysis requests, by result.",
	},
	[]string{"result"},
)

// AIRequestDuration measures a single call to the language model.
// Label:
//   - step: "describe" or "estimate"
var AIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ai_request_duration_seconds",
		Help:      "Duration of language model calls, by analysis step.",
		Buckets:   []float64{.25, .5, 1, 2, 4, 8, 16, 32, 64},
	},
	[]string{"step"},
)

// ── Food log metrics ──────────────────────────────────────────────────────────

// FoodLogsCreatedTotal counts persisted food log entries.
var FoodLogsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "food_logs_created_total",
		Help:      "Total number of food log entries stored.",
	},
)

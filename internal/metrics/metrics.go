// Package metrics defines and registers all custom Prometheus metrics for the
// marketplace API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Payment event metrics ─────────────────────────────────────────────────────

// PaymentsProcessedTotal counts payment events that completed processing.
// Labels:
//   - status: the new invoice status applied by the event (e.g. "paid")
//   - source: the event source reported by the sender (e.g. "stripe", "manual")
var PaymentsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_processed_total",
		Help:      "Total number of payment events successfully processed.",
	},
	[]string{"status", "source"},
)

// PaymentsErrorsTotal counts payment events that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "invalid_transition", "invoice_not_found", "update_failed")
var PaymentsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_errors_total",
		Help:      "Total number of payment events that failed processing.",
	},
	[]string{"reason"},
)

// PaymentsDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new event, processed)
var PaymentsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// PaymentsQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var PaymentsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "payments_queue_depth",
		Help:      "Current number of payment events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// PaymentProcessingDuration measures how long a single payment event takes to
// process end-to-end.
// Label:
//   - status: the resulting invoice status
var PaymentProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "payment_processing_duration_seconds",
		Help:      "Duration of payment event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"status"},
)

// ── Dashboard metrics ─────────────────────────────────────────────────────────

// StatsCacheTotal counts dashboard stats cache lookups.
// Label:
//   - result: "hit" or "miss"
var StatsCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_total",
		Help:      "Total number of dashboard stats cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts successful account registrations, by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts, by outcome.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result (success/failure).",
	},
	[]string{"result"},
)

// InvoicesCreatedTotal counts newly created invoices, by currency.
var InvoicesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoices_created_total",
		Help:      "Total number of invoices created, by currency.",
	},
	[]string{"currency"},
)

// Package metrics defines and registers all custom Prometheus metrics for the
// clinic API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default Prometheus registry at init time; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clinic"

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsCreatedTotal counts bookings accepted through the public endpoint.
var BookingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created.",
	},
)

// BookingTransitionsTotal counts successful status transitions.
// Label:
//   - to: the status the booking moved into ("confirmed", "completed", "cancelled")
var BookingTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_transitions_total",
		Help:      "Total number of successful booking status transitions.",
	},
	[]string{"to"},
)

// BookingTransitionErrorsTotal counts rejected transitions.
// Label:
//   - reason: "not_found", "forbidden", "invalid_transition", "conflict", or "error"
var BookingTransitionErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_transition_errors_total",
		Help:      "Total number of booking transitions that were rejected.",
	},
	[]string{"reason"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (all failure modes are one bucket;
//     the split deliberately mirrors what the client can observe)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Aggregation metrics ───────────────────────────────────────────────────────

// AggregationDuration measures how long a read-side projection takes,
// including the booking fetch it recomputes from.
// Label:
//   - report: "dashboard", "earnings", or "patients"
var AggregationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "aggregation_duration_seconds",
		Help:      "Duration of aggregation queries from request to computed report.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"report"},
)

package booking

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcome labels.
const (
	outcomeSuccess    = "success"
	outcomeConflict   = "conflict"
	outcomeValidation = "validation"
	outcomeFailed     = "failed"
)

type bookingMetrics struct {
	SessionsOpened prometheus.Counter
	Submissions    *prometheus.CounterVec
	CoinsRedeemed  prometheus.Counter
	ExitsScheduled *prometheus.CounterVec
}

var metrics = newBookingMetrics("washbook", "booking")

func newBookingMetrics(namespace, subsystem string) *bookingMetrics {
	return &bookingMetrics{
		SessionsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sessions_opened_total",
			Help:      "Total number of booking sessions opened",
		}),
		Submissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "submissions_total",
			Help:      "Booking submissions by outcome",
		}, []string{"outcome"}),
		CoinsRedeemed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "coins_redeemed_total",
			Help:      "Loyalty coins debited by confirmed bookings",
		}),
		ExitsScheduled: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "session_exits_scheduled_total",
			Help:      "Post-success session exits by scheduling result",
		}, []string{"status"}),
	}
}

// outcomeOf classifies a submission error for the submissions counter.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case isConflict(err):
		return outcomeConflict
	case IsValidation(err):
		return outcomeValidation
	}
	return outcomeFailed
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Booking outcomes recorded by ObserveBooking
const (
	BookingAccepted          = "accepted"
	BookingClassRoomConflict = "classroom_conflict"
	BookingTeacherConflict   = "teacher_conflict"
	BookingGroupConflict     = "group_conflict"
)

var (
	// HTTPRequests counts served requests by method, route and status
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "unischedule",
		Name:      "http_requests_total",
		Help:      "Number of HTTP requests served.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency in seconds
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "unischedule",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	bookings = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "unischedule",
		Name:      "lecture_bookings_total",
		Help:      "Attempts to place a lecture into a schedule, by outcome.",
	}, []string{"outcome"})

	substitutions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "unischedule",
		Name:      "teacher_substitutions_total",
		Help:      "Lectures reassigned by teacher substitution.",
	})
)

// ObserveBooking records the outcome of a lecture booking
func ObserveBooking(outcome string) {
	bookings.WithLabelValues(outcome).Inc()
}

// ObserveSubstitutions adds n reassigned lectures
func ObserveSubstitutions(n int) {
	substitutions.Add(float64(n))
}

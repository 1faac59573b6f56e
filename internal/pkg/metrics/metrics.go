package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "airline_booking"

var (
	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "bookings_total", Help: "Trip booking attempts by outcome"},
		[]string{"outcome"},
	)
	CancellationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "cancellations_total", Help: "Trip cancellation attempts by outcome"},
		[]string{"outcome"},
	)
	SeatsBooked = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "seats_booked_total", Help: "Seats taken by booked legs"},
		[]string{"cabin_class"},
	)
	BookingLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "booking_latency_seconds",
		Help:      "Trip booking latency seconds",
		Buckets:   prometheus.DefBuckets,
	})
	EventPublishErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_publish_errors_total",
		Help:      "Trip events that could not be published",
	})
)

const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

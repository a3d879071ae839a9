package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus collectors for the service
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	BookingsCreatedTotal   *prometheus.CounterVec
	BookingsCancelledTotal prometheus.Counter
	BookingConflictsTotal  prometheus.Counter
	ChainChunksTotal       *prometheus.CounterVec
}

// IncBookingCreated counts a created booking. Nil-safe so callers can
// run with metrics disabled.
func (m *Metrics) IncBookingCreated(reason string) {
	if m == nil {
		return
	}
	m.BookingsCreatedTotal.WithLabelValues(reason).Inc()
}

// IncBookingCancelled counts a cancellation
func (m *Metrics) IncBookingCancelled() {
	if m == nil {
		return
	}
	m.BookingsCancelledTotal.Inc()
}

// IncBookingConflict counts a rejected conflicting attempt
func (m *Metrics) IncBookingConflict() {
	if m == nil {
		return
	}
	m.BookingConflictsTotal.Inc()
}

// IncChainChunk counts one group-chain chunk by outcome
func (m *Metrics) IncChainChunk(outcome string) {
	if m == nil {
		return
	}
	m.ChainChunksTotal.WithLabelValues(outcome).Inc()
}

// New registers and returns the service collectors
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		BookingsCreatedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings created, labelled by selection reason",
			ConstLabels: constLabels,
		}, []string{"reason"}),

		BookingsCancelledTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Bookings cancelled",
			ConstLabels: constLabels,
		}),

		BookingConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Booking attempts rejected with a slot conflict",
			ConstLabels: constLabels,
		}),

		ChainChunksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_chain_chunks_total",
			Help:        "Group chain chunks, labelled by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Aerodesk
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Booking Metrics
	ReservationsCreatedTotal prometheus.Counter
	SeatConfirmationsTotal   prometheus.CounterVec
	SeatConflictsTotal       prometheus.Counter
	TicketsIssuedTotal       prometheus.Counter

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Sweep Metrics
	SweepRunsTotal       prometheus.Counter
	SweepFlightsAdvanced prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aerodesk_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aerodesk_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "aerodesk_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Booking Metrics
		ReservationsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "aerodesk_reservations_created_total",
				Help: "Total reservations created",
			},
		),
		SeatConfirmationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aerodesk_seat_confirmations_total",
				Help: "Seat confirmation attempts by outcome",
			},
			[]string{"outcome"},
		),
		SeatConflictsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "aerodesk_seat_conflicts_total",
				Help: "Seat confirmations rejected because another reservation held the seat",
			},
		),
		TicketsIssuedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "aerodesk_tickets_issued_total",
				Help: "Total tickets issued (idempotent re-issues excluded)",
			},
		),

		// Cache Metrics
		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aerodesk_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aerodesk_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Sweep Metrics
		SweepRunsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "aerodesk_sweep_runs_total",
				Help: "Total flight status sweep executions",
			},
		),
		SweepFlightsAdvanced: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aerodesk_sweep_flights_advanced_total",
				Help: "Flights advanced by the status sweep, by transition",
			},
			[]string{"transition"},
		),
	}
}

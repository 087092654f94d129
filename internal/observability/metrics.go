package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the status pipeline.
type Metrics struct {
	Passes           *prometheus.CounterVec // labels: outcome={success,skipped,read_error,write_error}
	FlightsRefreshed prometheus.Counter
	FlightsFailed    prometheus.Counter
	LastPass         prometheus.Gauge

	FetchAttempts *prometheus.CounterVec // labels: outcome={success,error}
	FetchDuration prometheus.Histogram

	HTTPRequests *prometheus.CounterVec   // labels: route, method, code
	HTTPDuration *prometheus.HistogramVec // labels: route, method
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flight_tracker",
			Name:      "reconcile_passes_total",
			Help:      "Reconciliation passes by outcome.",
		}, []string{"outcome"}),
		FlightsRefreshed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flight_tracker",
			Name:      "flights_refreshed_total",
			Help:      "Flights merged with a fresh status.",
		}),
		FlightsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flight_tracker",
			Name:      "flights_failed_total",
			Help:      "Eligible flights whose status could not be refreshed.",
		}),
		LastPass: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flight_tracker",
			Name:      "last_pass_timestamp_seconds",
			Help:      "Unix time of the last successful reconciliation pass.",
		}),
		FetchAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flight_tracker",
			Name:      "status_fetch_attempts_total",
			Help:      "Status API attempts by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flight_tracker",
			Name:      "status_fetch_duration_seconds",
			Help:      "Status API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flight_tracker",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flight_tracker",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	reg.MustRegister(
		m.Passes,
		m.FlightsRefreshed,
		m.FlightsFailed,
		m.LastPass,
		m.FetchAttempts,
		m.FetchDuration,
		m.HTTPRequests,
		m.HTTPDuration,
	)

	return m
}

// NewMetricsForTesting registers the collectors with a throwaway registry.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

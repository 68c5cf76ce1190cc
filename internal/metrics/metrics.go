/*
Package metrics holds the Prometheus collectors exported on /metrics.

HTTP:
  - http_requests_total: counter, labels method, route, status
  - http_request_duration_seconds: histogram, labels method, route

Auth:
  - auth_logins_total: counter, label outcome (success, failure)
  - auth_registrations_total: counter, label outcome (success, disabled, taken, invalid)

Geocoding:
  - geocoder_requests_total: counter, label outcome (success, no_match, error, rejected)
  - geocoder_request_duration_seconds: histogram
  - geocoder_circuit_breaker_state: gauge, 0=closed 1=half-open 2=open
  - location_enrichment_failures_total: counter, label stage (geocode, persist)
*/
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	AuthLogins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)

	AuthRegistrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "Self sign-up attempts by outcome",
		},
		[]string{"outcome"},
	)

	GeocoderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocoder_requests_total",
			Help: "Geocoder lookups by outcome",
		},
		[]string{"outcome"},
	)

	GeocoderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "geocoder_request_duration_seconds",
			Help:    "Geocoder round-trip time in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	GeocoderBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "geocoder_circuit_breaker_state",
			Help: "Geocoder circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	EnrichmentFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "location_enrichment_failures_total",
			Help: "Location enrichments that did not complete, by stage",
		},
		[]string{"stage"},
	)
)

// RecordHTTPRequest observes one finished request. route is the router
// pattern, never the raw path, to keep label cardinality bounded.
func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

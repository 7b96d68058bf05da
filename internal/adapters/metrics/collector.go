// Package metrics exposes Prometheus instrumentation for the API
// client: request counts and latency, retries, cooldown trips and
// token refreshes.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "nsgifts"
	subsystem = "client"
)

// ClientMetricsCollector records request-core events into Prometheus
// metrics. It satisfies the client's MetricsRecorder interface.
type ClientMetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retriesTotal    *prometheus.CounterVec
	cooldownTrips   *prometheus.CounterVec
	tokenRefreshes  *prometheus.CounterVec
}

// NewClientMetricsCollector creates a new client metrics collector
func NewClientMetricsCollector() *ClientMetricsCollector {
	return &ClientMetricsCollector{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "api_requests_total",
				Help:      "Total number of API requests by method, endpoint, and status code",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "api_request_duration_seconds",
				Help:      "API request duration distribution",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"method", "endpoint"},
		),

		retriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "api_retries_total",
				Help:      "Total number of transport-failure retry attempts",
			},
			[]string{"endpoint", "reason"},
		),

		cooldownTrips: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cooldown_trips_total",
				Help:      "Total number of 5xx responses opening the cooldown gate",
			},
			[]string{"endpoint"},
		),

		tokenRefreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "token_refreshes_total",
				Help:      "Total number of token refresh attempts by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Register registers all client metrics with the given registry
func (c *ClientMetricsCollector) Register(registry *prometheus.Registry) error {
	collectors := []prometheus.Collector{
		c.requestsTotal,
		c.requestDuration,
		c.retriesTotal,
		c.cooldownTrips,
		c.tokenRefreshes,
	}

	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// RecordRequest records an API request completion
func (c *ClientMetricsCollector) RecordRequest(method, endpoint string, status int, seconds float64) {
	c.requestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, endpoint).Observe(seconds)
}

// RecordRetry records one transport-failure retry attempt
func (c *ClientMetricsCollector) RecordRetry(endpoint, reason string) {
	c.retriesTotal.WithLabelValues(endpoint, reason).Inc()
}

// RecordCooldownTrip records a 5xx response opening the cooldown gate
func (c *ClientMetricsCollector) RecordCooldownTrip(endpoint string) {
	c.cooldownTrips.WithLabelValues(endpoint).Inc()
}

// RecordTokenRefresh records a token refresh outcome
func (c *ClientMetricsCollector) RecordTokenRefresh(outcome string) {
	c.tokenRefreshes.WithLabelValues(outcome).Inc()
}

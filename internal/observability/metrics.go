// ABOUTME: Prometheus metrics for the HTTP API and assessment client
// ABOUTME: Registers counters and histograms with the default or a private registry

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Assessment outcomes recorded by AssessmentsTotal.
const (
	OutcomeSuccess  = "success"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"
	OutcomeCacheHit = "cache_hit"
)

// Metrics holds the Prometheus collectors for the service.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec   // labels: method, route, status
	HTTPRequestDuration *prometheus.HistogramVec // labels: method, route

	LoginAttempts      *prometheus.CounterVec // labels: result={success,failure}
	LocationsCreated   prometheus.Counter
	LocationsSimulated *prometheus.CounterVec // labels: status

	AssessmentsTotal   *prometheus.CounterVec // labels: outcome
	AssessmentDuration prometheus.Histogram

	EventsPublished   prometheus.Counter
	EventPublishError prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	m := newMetrics()
	prometheus.NewRegistry().MustRegister(m.collectors()...)
	return m
}

func newMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aquaguard",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route template, and status code.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "aquaguard",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route template.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"method", "route"}),
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aquaguard",
			Name:      "login_attempts_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		LocationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aquaguard",
			Name:      "locations_created_total",
			Help:      "Locations added.",
		}),
		LocationsSimulated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aquaguard",
			Name:      "locations_simulated_total",
			Help:      "Simulate calls that changed a location, by resulting status.",
		}, []string{"status"}),
		AssessmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aquaguard",
			Name:      "assessments_total",
			Help:      "Assessment requests by outcome. Cache hits are also counted as success.",
		}, []string{"outcome"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "aquaguard",
			Name:      "assessment_duration_seconds",
			Help:      "Latency of calls to the text-generation service.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aquaguard",
			Name:      "events_published_total",
			Help:      "Location events written to the broker.",
		}),
		EventPublishError: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aquaguard",
			Name:      "event_publish_errors_total",
			Help:      "Location events that failed to publish.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.LoginAttempts,
		m.LocationsCreated,
		m.LocationsSimulated,
		m.AssessmentsTotal,
		m.AssessmentDuration,
		m.EventsPublished,
		m.EventPublishError,
	}
}

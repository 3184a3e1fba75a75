// Package metrics exposes Prometheus collectors for the participation API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gestion"

// Registration outcomes.
const (
	OutcomeRegistered   = "registered"
	OutcomeNotFound     = "not_found"
	OutcomeInvalidState = "invalid_state"
	OutcomeConflict     = "conflict"
	OutcomeUnexpected   = "unexpected"
)

type Metrics struct {
	registry *prometheus.Registry

	registrations  *prometheus.CounterVec
	rateLimitHits  prometheus.Counter
	requestLatency *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "participation",
			Name:      "registrations_total",
			Help:      "Participation registration attempts by outcome.",
		}, []string{"outcome"}),
		rateLimitHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_hits_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}

	registry.MustRegister(m.registrations, m.rateLimitHits, m.requestLatency)

	return m
}

func (m *Metrics) RecordRegistration(outcome string) {
	m.registrations.WithLabelValues(outcome).Inc()
}

// Registrations exposes the registration counter for assertions.
func (m *Metrics) Registrations() *prometheus.CounterVec {
	return m.registrations
}

func (m *Metrics) RecordRateLimitHit() {
	m.rateLimitHits.Inc()
}

func (m *Metrics) ObserveRequest(route, method, status string, seconds float64) {
	m.requestLatency.WithLabelValues(route, method, status).Observe(seconds)
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

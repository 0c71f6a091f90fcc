// Package metrics registers the Prometheus collectors exposed by the
// program service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles every collector the service records into.
type Metrics struct {
	// HTTPRequestsTotal counts requests by method, route, and status code.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration observes request latency by method and route.
	HTTPRequestDuration *prometheus.HistogramVec

	// ScheduleValidationsTotal counts validation passes by outcome
	// (accepted, rejected, error).
	ScheduleValidationsTotal *prometheus.CounterVec

	// ScheduleViolationsTotal counts individual violations by code.
	ScheduleViolationsTotal *prometheus.CounterVec
}

// New registers the collectors on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the collectors on the given registry. Tests pass
// their own registry to avoid duplicate registration panics.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		ScheduleValidationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schedule_validations_total",
				Help: "Total number of schedule validation passes",
			},
			[]string{"outcome"},
		),
		ScheduleViolationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schedule_violations_total",
				Help: "Total number of schedule violations reported",
			},
			[]string{"code"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ScheduleValidationsTotal,
		m.ScheduleViolationsTotal,
	)

	return m
}

// RecordValidation counts one validation pass.
func (m *Metrics) RecordValidation(outcome string) {
	if m == nil {
		return
	}
	m.ScheduleValidationsTotal.WithLabelValues(outcome).Inc()
}

// RecordViolation counts one reported violation.
func (m *Metrics) RecordViolation(code string) {
	if m == nil {
		return
	}
	m.ScheduleViolationsTotal.WithLabelValues(code).Inc()
}

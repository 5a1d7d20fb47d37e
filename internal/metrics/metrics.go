// Package metrics owns the Prometheus registry and the application collectors.
//
// All recording methods are safe to call on a nil *Metrics, so services can be
// constructed without instrumentation in tests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ecotracker"

// Metrics holds the registry and every collector the service records to.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	transactions  *prometheus.CounterVec
	activities    *prometheus.CounterVec
	emissions     prometheus.Counter
	badgesAwarded *prometheus.CounterVec
	jobRuns       *prometheus.CounterVec
	jobDuration   *prometheus.HistogramVec
}

// New creates a registry with Go runtime, process and application collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests per route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency per route",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
			},
			[]string{"route", "method"},
		),
		transactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_recorded_total",
				Help:      "Total number of transactions created per type",
			},
			[]string{"type"},
		),
		activities: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "activities_logged_total",
				Help:      "Total number of carbon activities logged per category",
			},
			[]string{"category"},
		),
		emissions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "carbon_emission_kg_total",
				Help:      "Total kg of CO2 reported through logged activities",
			},
		),
		badgesAwarded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "badges_awarded_total",
				Help:      "Total number of badges awarded per badge",
			},
			[]string{"badge"},
		),
		jobRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scheduler_runs_total",
				Help:      "Total number of scheduled job runs per job and outcome",
			},
			[]string{"job", "status"},
		),
		jobDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "scheduler_run_duration_seconds",
				Help:      "Scheduled job run time",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
			},
			[]string{"job"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.transactions,
		m.activities,
		m.emissions,
		m.badgesAwarded,
		m.jobRuns,
		m.jobDuration,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// TransactionRecorded counts a newly created transaction.
func (m *Metrics) TransactionRecorded(txType string) {
	if m == nil {
		return
	}
	m.transactions.WithLabelValues(txType).Inc()
}

// ActivityLogged counts a logged activity and its emission.
func (m *Metrics) ActivityLogged(category string, emissionKg float64) {
	if m == nil {
		return
	}
	m.activities.WithLabelValues(category).Inc()
	m.emissions.Add(emissionKg)
}

// BadgeAwarded counts a newly earned badge.
func (m *Metrics) BadgeAwarded(badge string) {
	if m == nil {
		return
	}
	m.badgesAwarded.WithLabelValues(badge).Inc()
}

// JobRun records the outcome of a scheduled job.
func (m *Metrics) JobRun(job string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.jobRuns.WithLabelValues(job, status).Inc()
	m.jobDuration.WithLabelValues(job).Observe(elapsed.Seconds())
}

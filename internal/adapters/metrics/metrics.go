package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vncsmyrnk/vote/internal/core/ports"
)

const namespace = "vote"

type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	VotesCast         *prometheus.CounterVec
	QueuePushFailures prometheus.Counter
	HealthChecks      *prometheus.CounterVec
}

var _ ports.Metrics = (*Metrics)(nil)

// New registers every collector on a private registry so that several
// instances can coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		VotesCast: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "votes_cast_total",
				Help:      "Votes pushed onto the queue, by option",
			},
			[]string{"option"},
		),
		QueuePushFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "queue_push_failures_total",
				Help:      "Failed attempts to push a vote onto the queue",
			},
		),
		HealthChecks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "health_checks_total",
				Help:      "Health checks, by outcome",
			},
			[]string{"status"},
		),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) VoteCast(option string) {
	m.VotesCast.WithLabelValues(option).Inc()
}

func (m *Metrics) QueuePushFailed() {
	m.QueuePushFailures.Inc()
}

func (m *Metrics) HealthChecked(healthy bool) {
	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}
	m.HealthChecks.WithLabelValues(status).Inc()
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hkloans"

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	LoansCreated      prometheus.Counter
	LoansRenegotiated prometheus.Counter
	InstallmentsPaid  *prometheus.CounterVec
	AmountReceived    prometheus.Counter
	AmountDisbursed   prometheus.Counter
	IdempotentReplays prometheus.Counter
}

// New registers every collector on a private registry so tests can build as many as they need.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		LoansCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loans_created_total",
			Help:      "Loans issued, renegotiation successors included.",
		}),
		LoansRenegotiated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loans_renegotiated_total",
			Help:      "Loans closed by renegotiation.",
		}),
		InstallmentsPaid: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "installments_paid_total",
			Help:      "Installment payments by mode.",
		}, []string{"mode"}),
		AmountReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "amount_received_total",
			Help:      "Money recorded as incoming by payments and renegotiation entries.",
		}),
		AmountDisbursed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "amount_disbursed_total",
			Help:      "Principal lent plus partner commissions.",
		}),
		IdempotentReplays: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "idempotent_replays_total",
			Help:      "Responses served from the idempotency store.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.LoansCreated,
		m.LoansRenegotiated,
		m.InstallmentsPaid,
		m.AmountReceived,
		m.AmountDisbursed,
		m.IdempotentReplays,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

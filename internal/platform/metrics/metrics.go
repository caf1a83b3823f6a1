// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "pdv"

// Metrics groups the HTTP and domain collectors. A nil *Metrics is valid and
// records nothing, so callers never need to guard.
type Metrics struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	shiftsClosed    *prometheus.CounterVec
	cashDifference  prometheus.Histogram
	auditReviews    *prometheus.CounterVec
	billsGenerated  prometheus.Counter
}

// New creates the collectors on a dedicated registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		shiftsClosed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shifts_closed_total",
			Help:      "Shifts committed, by whether the count was balanced.",
		}, []string{"balanced"}),
		cashDifference: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cash_difference",
			Help:      "Counted minus expected cash at shift close.",
			Buckets:   []float64{-100, -50, -10, -1, -0.01, 0.01, 1, 10, 50, 100},
		}),
		auditReviews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_reviews_total",
			Help:      "Cash audit review decisions.",
		}, []string{"decision"}),
		billsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bills_generated_total",
			Help:      "Transactions materialised from recurring bills.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestDuration, m.shiftsClosed, m.cashDifference, m.auditReviews, m.billsGenerated,
	)
	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(route, method, status).Observe(seconds)
}

// ShiftClosed records a committed shift and its cash difference.
func (m *Metrics) ShiftClosed(balanced bool, difference decimal.Decimal) {
	if m == nil {
		return
	}
	label := "false"
	if balanced {
		label = "true"
	}
	m.shiftsClosed.WithLabelValues(label).Inc()
	m.cashDifference.Observe(difference.InexactFloat64())
}

func (m *Metrics) AuditReviewed(decision string) {
	if m == nil {
		return
	}
	m.auditReviews.WithLabelValues(decision).Inc()
}

func (m *Metrics) BillsGenerated(n int) {
	if m == nil {
		return
	}
	m.billsGenerated.Add(float64(n))
}

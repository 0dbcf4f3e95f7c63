// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "voucher_api"

// Discount kinds used as the "kind" label.
const (
	KindNone      = "none"
	KindVoucher   = "voucher"
	KindPromotion = "promotion"
)

// OutcomeApplied labels a discount request that produced an order.
const OutcomeApplied = "applied"

// Metrics groups the application's collectors around one registry.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	discountOutcomes *prometheus.CounterVec
	discountTotal    *prometheus.CounterVec
	seedImported     *prometheus.CounterVec
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		discountOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discount_requests_total",
			Help:      "Order pricing requests by discount kind and outcome.",
		}, []string{"kind", "outcome"}),
		discountTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discount_amount_total",
			Help:      "Sum of discounts granted by discount kind.",
		}, []string{"kind"}),
		seedImported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seed_records_total",
			Help:      "Catalog seed records by type and result.",
		}, []string{"type", "result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.discountOutcomes,
		m.discountTotal,
		m.seedImported,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveDiscount records the outcome of an order pricing request. outcome is
// OutcomeApplied or a domain error code.
func (m *Metrics) ObserveDiscount(kind, outcome string, amount float64) {
	m.discountOutcomes.WithLabelValues(kind, outcome).Inc()
	if outcome == OutcomeApplied && amount > 0 {
		m.discountTotal.WithLabelValues(kind).Add(amount)
	}
}

// ObserveSeed records one catalog seed record.
func (m *Metrics) ObserveSeed(recordType, result string) {
	m.seedImported.WithLabelValues(recordType, result).Inc()
}

// Package metrics exposes Prometheus collectors for web service calls.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records the outcome and latency of every dispatched call.
type Metrics struct {
	// Requests by service, jurisdiction and outcome
	Requests *prometheus.CounterVec

	// Request latency by service, network time included
	Duration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers the collectors on reg. A nil reg uses a fresh registry, so
// several clients in one process never collide on the default one.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dfe_requests_total",
			Help: "Total web service requests by service, uf and outcome",
		}, []string{"servico", "uf", "outcome"}),

		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dfe_request_duration_seconds",
			Help:    "Duration of web service requests by service",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"servico"}),

		gatherer: reg,
	}
}

// ObserveRequest records one call. Safe on a nil receiver.
func (m *Metrics) ObserveRequest(servico, uf, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(servico, uf, outcome).Inc()
	m.Duration.WithLabelValues(servico).Observe(d.Seconds())
}

// Handler serves the collected metrics in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

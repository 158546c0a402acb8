// Package metrics exposes Prometheus counters and histograms for the RPC
// layer and the settlement calculator.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fairshare"

// Metrics holds the service's collectors on a private registry. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	rpcRequests        *prometheus.CounterVec
	rpcDuration        *prometheus.HistogramVec
	settlements        prometheus.Counter
	validationFailures *prometheus.CounterVec
}

// New creates the collectors and registers them together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		settlements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_computed_total",
			Help:      "Settlements proposed by the solver.",
		}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Inputs rejected by the calculator, by procedure.",
		}, []string{"procedure"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.rpcRequests,
		m.rpcDuration,
		m.settlements,
		m.validationFailures,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRPC records one finished call.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(d.Seconds())
}

// SettlementsComputed adds n proposed settlements.
func (m *Metrics) SettlementsComputed(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.settlements.Add(float64(n))
}

// ValidationFailed counts one rejected input.
func (m *Metrics) ValidationFailed(procedure string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(procedure).Inc()
}

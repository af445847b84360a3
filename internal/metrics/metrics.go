// Package metrics exposes the scan loop's optional Prometheus counters.
// A Registry is purely additive — nothing in the scan path reads it
// back to make a decision.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry implements arbscan.ScanMetrics.
type Registry struct {
	published       prometheus.Counter
	suppressed      *prometheus.CounterVec
	adapterFailures *prometheus.CounterVec
}

// NewRegistry builds and registers the scan-loop counters against reg.
func NewRegistry(reg *prometheus.Registry) *Registry {
	factory := promauto.With(reg)
	return &Registry{
		published: factory.NewCounter(prometheus.CounterOpts{
			Name: "arbscan_opportunities_published_total",
			Help: "Total number of opportunities published to the Sink and Alerter.",
		}),
		suppressed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "arbscan_opportunities_suppressed_total",
			Help: "Total number of route evaluations suppressed, by reason.",
		}, []string{"reason"}),
		adapterFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "arbscan_adapter_failures_total",
			Help: "Total number of adapter calls that returned no usable quote, by protocol.",
		}, []string{"protocol"}),
	}
}

func (r *Registry) IncPublished() {
	r.published.Inc()
}

func (r *Registry) IncSuppressed(reason string) {
	r.suppressed.WithLabelValues(reason).Inc()
}

func (r *Registry) IncAdapterFailure(protocol string) {
	r.adapterFailures.WithLabelValues(protocol).Inc()
}

// Handler returns the promhttp handler for reg, suitable for mounting
// at /metrics.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Package metrics exposes Prometheus counters for authentication outcomes
// and request handling on a private registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gophauth"

// Registry holds all application metrics. It implements services.Observer.
type Registry struct {
	registry *prometheus.Registry

	Registrations   *prometheus.CounterVec
	Logins          *prometheus.CounterVec
	TokenRejections *prometheus.CounterVec

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Registration attempts by outcome.",
		}, []string{"outcome"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		TokenRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_rejections_total",
			Help:      "Bearer tokens rejected by reason.",
		}, []string{"reason"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Handled requests by transport, operation and status code.",
		}, []string{"transport", "operation", "code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Request latency by transport and operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"transport", "operation"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.Registrations,
		r.Logins,
		r.TokenRejections,
		r.RequestsTotal,
		r.RequestDuration,
	)
	return r
}

func (r *Registry) ObserveRegistration(outcome string) {
	r.Registrations.WithLabelValues(outcome).Inc()
}

func (r *Registry) ObserveLogin(outcome string) {
	r.Logins.WithLabelValues(outcome).Inc()
}

func (r *Registry) ObserveTokenRejection(reason string) {
	r.TokenRejections.WithLabelValues(reason).Inc()
}

// ObserveRequest records one handled request.
func (r *Registry) ObserveRequest(transport, operation, code string, elapsed time.Duration) {
	r.RequestsTotal.WithLabelValues(transport, operation, code).Inc()
	r.RequestDuration.WithLabelValues(transport, operation).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

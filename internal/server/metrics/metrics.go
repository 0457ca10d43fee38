// Package metrics holds the Prometheus instruments of the backend.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	registry *prometheus.Registry

	Signups         *prometheus.CounterVec
	Logins          *prometheus.CounterVec
	MatchesAppended *prometheus.CounterVec
	MessagesStored  prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

// New creates the metrics on a private registry, together with the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Signups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "backend_signups_total",
			Help: "Signup attempts by account variant and outcome",
		}, []string{"variant", "outcome"}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "backend_logins_total",
			Help: "Login attempts by account variant and outcome",
		}, []string{"variant", "outcome"}),
		MatchesAppended: f.NewCounterVec(prometheus.CounterOpts{
			Name: "backend_matches_appended_total",
			Help: "Match entries appended, by owning variant",
		}, []string{"variant"}),
		MessagesStored: f.NewCounter(prometheus.CounterOpts{
			Name: "backend_messages_stored_total",
			Help: "Messages stored",
		}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "backend_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route pattern and status code",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

func (m *Metrics) ObserveSignup(variant string, err error) {
	m.Signups.WithLabelValues(variant, outcome(err)).Inc()
}

func (m *Metrics) ObserveLogin(variant string, err error) {
	m.Logins.WithLabelValues(variant, outcome(err)).Inc()
}

func (m *Metrics) IncrementMatches(variant string, n int) {
	m.MatchesAppended.WithLabelValues(variant).Add(float64(n))
}

func (m *Metrics) IncrementMessages() {
	m.MessagesStored.Inc()
}

func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	m.RequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the form server.
type Metrics struct {
	registry *prometheus.Registry

	EventsDispatched *prometheus.CounterVec
	EventsRejected   *prometheus.CounterVec
	Submissions      *prometheus.CounterVec
	SessionsActive   prometheus.Gauge
	SessionsCreated  prometheus.Counter
	RenderDuration   *prometheus.HistogramVec
}

// New creates and registers all collectors on a dedicated registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		EventsDispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "regform_events_dispatched_total",
			Help: "Form events applied, by kind",
		}, []string{"kind"}),
		EventsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "regform_events_rejected_total",
			Help: "Form events refused before reaching the form, by reason",
		}, []string{"reason"}),
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "regform_submissions_total",
			Help: "Submit attempts, by outcome",
		}, []string{"outcome"}),
		SessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "regform_sessions_active",
			Help: "Form sessions currently held in memory",
		}),
		SessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "regform_sessions_created_total",
			Help: "Form sessions started",
		}),
		RenderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "regform_render_duration_seconds",
			Help:    "Time spent rendering a snapshot, by renderer",
			Buckets: prometheus.DefBuckets,
		}, []string{"renderer"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) IncrementEvent(kind string) {
	m.EventsDispatched.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementRejected(reason string) {
	m.EventsRejected.WithLabelValues(reason).Inc()
}

// IncrementSubmission counts a submit attempt; outcome is "success" or
// "invalid".
func (m *Metrics) IncrementSubmission(outcome string) {
	m.Submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SessionStarted() {
	m.SessionsCreated.Inc()
	m.SessionsActive.Inc()
}

func (m *Metrics) SessionEnded() {
	m.SessionsActive.Dec()
}

func (m *Metrics) ObserveRender(renderer string, seconds float64) {
	m.RenderDuration.WithLabelValues(renderer).Observe(seconds)
}

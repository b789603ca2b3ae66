package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request outcomes recorded by the handler.
const (
	OutcomePreflight       = "preflight"
	OutcomeBadMethod       = "bad_method"
	OutcomeBadJSON         = "bad_json"
	OutcomeMissingQuestion = "missing_question"
	OutcomeSolved          = "solved"
	OutcomeSolverError     = "solver_error"
)

// Metrics holds the solver's Prometheus collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	answers       *prometheus.CounterVec
	solveDuration prometheus.Histogram
}

// New creates and registers all collectors, including Go and process stats.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stemsolver",
			Name:      "requests_total",
			Help:      "Handled requests by outcome.",
		}, []string{"outcome"}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stemsolver",
			Name:      "answers_total",
			Help:      "Inference results by recognized shape.",
		}, []string{"shape"}),
		solveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "stemsolver",
			Name:      "solve_duration_seconds",
			Help:      "Latency of the inference round trip.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.answers,
		m.solveDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest counts one handled request.
func (m *Metrics) ObserveRequest(outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
}

// ObserveAnswer counts one interpreted inference result.
func (m *Metrics) ObserveAnswer(shape string) {
	if m == nil {
		return
	}
	m.answers.WithLabelValues(shape).Inc()
}

// ObserveSolve records the duration of one inference round trip.
func (m *Metrics) ObserveSolve(d time.Duration) {
	if m == nil {
		return
	}
	m.solveDuration.Observe(d.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

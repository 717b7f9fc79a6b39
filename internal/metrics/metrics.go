// Package metrics exposes Prometheus instrumentation for practice sessions
// and bootstrap estimation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "adaptype"

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	SessionsTotal      *prometheus.CounterVec
	RejectedTotal      prometheus.Counter
	SessionAccuracy    *prometheus.HistogramVec
	SessionWPM         *prometheus.HistogramVec
	ErrorEntropy       prometheus.Gauge
	GeneratedWords     prometheus.Histogram
	BootstrapDuration  *prometheus.HistogramVec
	BootstrapFailTotal *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors with reg.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SessionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "completed_total",
			Help:      "Completed sessions by phase",
		}, []string{"phase"}),
		RejectedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "rejected_total",
			Help:      "Submissions rejected for length mismatch",
		}),
		SessionAccuracy: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "accuracy_ratio",
			Help:      "Per-session accuracy",
			Buckets:   []float64{0.5, 0.7, 0.8, 0.85, 0.9, 0.95, 0.98, 1},
		}, []string{"phase"}),
		SessionWPM: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "wpm",
			Help:      "Per-session words per minute",
			Buckets:   []float64{10, 20, 30, 40, 50, 60, 80, 100, 150},
		}, []string{"phase"}),
		ErrorEntropy: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "model",
			Name:      "error_entropy_bits",
			Help:      "Shannon entropy of the normalized letter error distribution",
		}),
		GeneratedWords: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "words",
			Help:      "Words per generated practice text",
			Buckets:   []float64{50, 60, 70, 80, 90, 100},
		}),
		BootstrapDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "bootstrap",
			Name:      "duration_seconds",
			Help:      "Bootstrap estimation latency",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"mode"}),
		BootstrapFailTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bootstrap",
			Name:      "unavailable_total",
			Help:      "Bootstrap estimates reported as unavailable",
		}, []string{"mode"}),
		gatherer: reg,
	}
}

// ObserveSession records one completed session.
func (m *Metrics) ObserveSession(phase string, accuracy, wpm, entropy float64) {
	if m == nil {
		return
	}
	m.SessionsTotal.WithLabelValues(phase).Inc()
	m.SessionAccuracy.WithLabelValues(phase).Observe(accuracy)
	m.SessionWPM.WithLabelValues(phase).Observe(wpm)
	m.ErrorEntropy.Set(entropy)
}

// ObserveRejected counts a rejected submission.
func (m *Metrics) ObserveRejected() {
	if m == nil {
		return
	}
	m.RejectedTotal.Inc()
}

// ObserveGenerated records the size of a generated text.
func (m *Metrics) ObserveGenerated(words int) {
	if m == nil {
		return
	}
	m.GeneratedWords.Observe(float64(words))
}

// ObserveBootstrap records one estimation; ok is false when it was unavailable.
func (m *Metrics) ObserveBootstrap(mode string, seconds float64, ok bool) {
	if m == nil {
		return
	}
	m.BootstrapDuration.WithLabelValues(mode).Observe(seconds)
	if !ok {
		m.BootstrapFailTotal.WithLabelValues(mode).Inc()
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// FormMetrics records product form session activity and upstream catalog calls.
type FormMetrics struct {
	submissions      *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	activeSessions   prometheus.Gauge
}

// NewFormMetrics registers the gateway metrics on the provided registerer.
func NewFormMetrics(reg prometheus.Registerer) *FormMetrics {
	if reg == nil {
		return &FormMetrics{}
	}
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "form_submissions_total",
		Help: "Product form submissions by mode and outcome.",
	}, []string{"mode", "outcome"})
	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_request_duration_seconds",
		Help:    "Duration of upstream catalog requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	activeSessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "form_sessions_active",
		Help: "Form sessions currently open.",
	})
	reg.MustRegister(submissions, upstreamDuration, activeSessions)
	return &FormMetrics{
		submissions:      submissions,
		upstreamDuration: upstreamDuration,
		activeSessions:   activeSessions,
	}
}

// IncSubmission counts one submission attempt outcome.
func (m *FormMetrics) IncSubmission(mode, outcome string) {
	if m == nil || m.submissions == nil {
		return
	}
	m.submissions.WithLabelValues(normalizeLabel(mode), normalizeLabel(outcome)).Inc()
}

// ObserveUpstream records the duration of one catalog request.
func (m *FormMetrics) ObserveUpstream(operation string, duration time.Duration) {
	if m == nil || m.upstreamDuration == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// SessionOpened bumps the active session gauge.
func (m *FormMetrics) SessionOpened() {
	if m == nil || m.activeSessions == nil {
		return
	}
	m.activeSessions.Inc()
}

// SessionClosed lowers the active session gauge.
func (m *FormMetrics) SessionClosed() {
	if m == nil || m.activeSessions == nil {
		return
	}
	m.activeSessions.Dec()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LifecycleMetrics counts status transitions, rejected transitions,
// verifications and live-stream polls.
type LifecycleMetrics struct {
	transitions   *prometheus.CounterVec
	rejected      *prometheus.CounterVec
	verifications *prometheus.CounterVec
	pollDuration  prometheus.Histogram
	pollFailure   prometheus.Counter
}

// NewLifecycleMetrics registers the lifecycle metrics on the provided registerer.
// A nil registerer yields a no-op collector.
func NewLifecycleMetrics(reg prometheus.Registerer) *LifecycleMetrics {
	if reg == nil {
		return &LifecycleMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lifecycle_transitions_total",
		Help: "Status transitions written to the record store.",
	}, []string{"entity", "status"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lifecycle_transitions_rejected_total",
		Help: "Status transitions refused before reaching the record store.",
	}, []string{"entity", "reason"})
	verifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tithe_verifications_total",
		Help: "Tithe and offering verification attempts by outcome.",
	}, []string{"outcome"})
	pollDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "live_stream_poll_duration_seconds",
		Help:    "Duration of live stream status polls in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	pollFailure := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "live_stream_poll_failure_total",
		Help: "Failed live stream status polls.",
	})
	reg.MustRegister(transitions, rejected, verifications, pollDuration, pollFailure)
	return &LifecycleMetrics{
		transitions:   transitions,
		rejected:      rejected,
		verifications: verifications,
		pollDuration:  pollDuration,
		pollFailure:   pollFailure,
	}
}

var lifecycleDefault *LifecycleMetrics

// Init registers the process-wide lifecycle metrics.
func Init(reg prometheus.Registerer) *LifecycleMetrics {
	lifecycleDefault = NewLifecycleMetrics(reg)
	return lifecycleDefault
}

// Lifecycle returns the metrics set by Init, or nil before Init.
func Lifecycle() *LifecycleMetrics {
	return lifecycleDefault
}

func (m *LifecycleMetrics) IncTransition(entity, status string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(entity), normalizeLabel(status)).Inc()
}

func (m *LifecycleMetrics) IncRejected(entity, reason string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(normalizeLabel(entity), normalizeLabel(reason)).Inc()
}

// IncVerification records a verify call; outcome is "recorded" or "duplicate".
func (m *LifecycleMetrics) IncVerification(outcome string) {
	if m == nil || m.verifications == nil {
		return
	}
	m.verifications.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (m *LifecycleMetrics) ObservePoll(d time.Duration, err error) {
	if m == nil || m.pollDuration == nil {
		return
	}
	m.pollDuration.Observe(d.Seconds())
	if err != nil {
		m.pollFailure.Inc()
	}
}

// Handler exposes the default gatherer for gin.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

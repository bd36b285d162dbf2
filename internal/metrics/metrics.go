// Package metrics exposes pipeline counters in Prometheus format.
//
// Metrics:
//   - meetingflow_provider_attempts_total{provider,outcome}
//   - meetingflow_destination_writes_total{destination,outcome}
//   - meetingflow_cache_lookups_total{result}
//   - meetingflow_meetings_total{status}
//   - meetingflow_stage_duration_seconds{stage}
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its registry so tests and multiple servers never collide.
type Metrics struct {
	registry *prometheus.Registry

	ProviderAttempts  *prometheus.CounterVec
	DestinationWrites *prometheus.CounterVec
	CacheLookups      *prometheus.CounterVec
	Meetings          *prometheus.CounterVec
	StageDuration     *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		ProviderAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meetingflow_provider_attempts_total",
				Help: "Extraction attempts per provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		DestinationWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meetingflow_destination_writes_total",
				Help: "Task writes per destination and outcome",
			},
			[]string{"destination", "outcome"}, // created, duplicate, failed
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meetingflow_cache_lookups_total",
				Help: "Transcript cache lookups by result",
			},
			[]string{"result"}, // hit, miss, error
		),
		Meetings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meetingflow_meetings_total",
				Help: "Meetings processed by final status",
			},
			[]string{"status"},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "meetingflow_stage_duration_seconds",
				Help:    "Duration of pipeline stages",
				Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
			},
			[]string{"stage"},
		),
	}
	reg.MustRegister(m.ProviderAttempts, m.DestinationWrites, m.CacheLookups, m.Meetings, m.StageDuration)
	return m
}

// ObserveAttempt implements provider.Recorder.
func (m *Metrics) ObserveAttempt(provider, outcome string) {
	m.ProviderAttempts.WithLabelValues(provider, outcome).Inc()
}

// ObserveWrite implements syncer.Recorder.
func (m *Metrics) ObserveWrite(destination, outcome string) {
	m.DestinationWrites.WithLabelValues(destination, outcome).Inc()
}

func (m *Metrics) ObserveCache(result string) {
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveMeeting(status string) {
	m.Meetings.WithLabelValues(status).Inc()
}

// ObserveStage records the time since start under stage.
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// Handler serves this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the countdown instruments
type Metrics struct {
	// Ticker metrics
	Ticks       prometheus.Counter
	PausedTicks prometheus.Counter
	Updates     prometheus.Counter
	Remaining   prometheus.Gauge

	// Input metrics
	Toggles prometheus.Counter

	// Lifecycle metrics
	Transitions *prometheus.CounterVec
}

// New registers the countdown instruments with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Ticks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "countdown_ticks_total",
				Help: "Total number of ticks that decremented the remaining duration",
			},
		),
		PausedTicks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "countdown_paused_ticks_total",
				Help: "Total number of ticks skipped while paused",
			},
		),
		Updates: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "countdown_updates_total",
				Help: "Total number of remaining time updates written",
			},
		),
		Remaining: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "countdown_remaining_seconds",
				Help: "Remaining duration in seconds",
			},
		),
		Toggles: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "countdown_toggles_total",
				Help: "Total number of pause/resume toggles",
			},
		),
		Transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "countdown_state_transitions_total",
				Help: "Total number of lifecycle state transitions",
			},
			[]string{"from", "to"},
		),
	}
}

// NewUnregistered returns instruments backed by a private registry
func NewUnregistered() *Metrics {
	return New(prometheus.NewRegistry())
}

// RecordTransition counts a lifecycle transition
func (m *Metrics) RecordTransition(from, to string) {
	m.Transitions.WithLabelValues(from, to).Inc()
}

// Package metrics exposes the director's Prometheus instruments
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Turn outcomes
const (
	OutcomeCommitted = "committed"
	OutcomeFallback  = "fallback"
	OutcomeRejected  = "rejected"
)

// Image effect results
const (
	ImageResolved = "resolved"
	ImageFailed   = "failed"
)

// Metrics records turn, directive and image effect activity. A nil *Metrics
// records nothing.
type Metrics struct {
	turns        *prometheus.CounterVec
	directives   *prometheus.CounterVec
	imageEffects *prometheus.CounterVec
	turnDuration prometheus.Histogram
}

// New registers the instruments with reg. A nil reg uses
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		turns: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "director_turns_total",
				Help: "Player turns by outcome.",
			},
			[]string{"outcome"},
		),
		directives: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "director_directives_total",
				Help: "Directives found in model responses by kind and result.",
			},
			[]string{"kind", "result"},
		),
		imageEffects: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "director_image_effects_total",
				Help: "Image generation effects by kind and result.",
			},
			[]string{"kind", "result"},
		),
		turnDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "director_turn_duration_seconds",
				Help:    "Time from accepted action to committed narrative.",
				Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 20, 40, 80},
			},
		),
	}
}

// TurnRejected counts an action refused before it started
func (m *Metrics) TurnRejected() {
	if m == nil {
		return
	}
	m.turns.WithLabelValues(OutcomeRejected).Inc()
}

// TurnCompleted counts a finished turn and observes its duration
func (m *Metrics) TurnCompleted(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.turns.WithLabelValues(outcome).Inc()
	m.turnDuration.Observe(d.Seconds())
}

// DirectiveHandled counts one handled directive
func (m *Metrics) DirectiveHandled(kind, result string) {
	if m == nil {
		return
	}
	m.directives.WithLabelValues(kind, result).Inc()
}

// ImageEffect counts one finished image effect
func (m *Metrics) ImageEffect(kind, result string) {
	if m == nil {
		return
	}
	m.imageEffects.WithLabelValues(kind, result).Inc()
}

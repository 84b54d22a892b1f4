package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the verification engine.
type Metrics struct {
	StepsRun          prometheus.Counter
	StepsFailed       prometheus.Counter
	InteractionEvents *prometheus.CounterVec
}

// New creates and registers all verification metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		StepsRun: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tiercheck_verification_steps_total",
			Help: "Total number of verification steps executed",
		}),
		StepsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tiercheck_verification_steps_failed_total",
			Help: "Total number of verification steps with at least one failed outcome",
		}),
		InteractionEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tiercheck_tier_interaction_events_total",
			Help: "Tier interaction events observed within verification step scopes, by type",
		}, []string{"type"}),
	}
}

// ObserveStep records the aggregate result of one verification step.
func (m *Metrics) ObserveStep(passed bool) {
	m.StepsRun.Inc()
	if !passed {
		m.StepsFailed.Inc()
	}
}

// ObserveInteractions adds the scoped event count observed for one
// interaction type.
func (m *Metrics) ObserveInteractions(interactionType string, count int) {
	m.InteractionEvents.WithLabelValues(interactionType).Add(float64(count))
}

package observability

import (
	"github.com/aretw0/cantype"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors fed by factory hooks.
type Metrics struct {
	Created     *prometheus.CounterVec
	Mismatches  *prometheus.CounterVec
	Resolutions *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Created: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cantype_type_objects_created_total",
				Help: "Total number of type objects created, by policy",
			},
			[]string{"policy"},
		),
		Mismatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cantype_type_mismatches_total",
				Help: "Total number of values rejected by strict types",
			},
			[]string{"policy", "type"},
		),
		Resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cantype_late_resolutions_total",
				Help: "Total number of late type resolutions, by outcome",
			},
			[]string{"outcome"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Created, m.Mismatches, m.Resolutions)
	}
	return m
}

// Hooks returns factory hooks that record into m.
func (m *Metrics) Hooks() cantype.Hooks {
	return cantype.Hooks{
		OnCreate: func(e *cantype.TypeEvent) {
			m.Created.WithLabelValues(e.Policy).Inc()
		},
		OnMismatch: func(e *cantype.TypeEvent) {
			m.Mismatches.WithLabelValues(e.Policy, e.Name).Inc()
		},
		OnResolve: func(e *cantype.TypeEvent) {
			outcome := "resolved"
			if e.Err != nil {
				outcome = "failed"
			}
			m.Resolutions.WithLabelValues(outcome).Inc()
		},
	}
}

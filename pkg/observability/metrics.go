package observability

import (
	"context"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the intake collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	stepVisits  *prometheus.CounterVec
	extractions *prometheus.CounterVec
	runs        *prometheus.CounterVec
	runSteps    prometheus.Histogram
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		stepVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_step_visits_total",
				Help: "Total number of step executions",
			},
			[]string{"step"},
		),
		extractions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_extraction_attempts_total",
				Help: "Structured extraction attempts by target and outcome",
			},
			[]string{"target", "outcome"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_runs_total",
				Help: "Finished runs by final status",
			},
			[]string{"status"},
		),
		runSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "intake_run_steps",
			Help:    "Steps executed per finished run",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		}),
	}
	m.registry.MustRegister(m.stepVisits, m.extractions, m.runs, m.runSteps)
	return m
}

// Registry exposes the registry for scraping and tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(_ context.Context, e *domain.StepEvent) {
			m.stepVisits.WithLabelValues(string(e.StepID)).Inc()
		},
		OnExtractionAttempt: func(_ context.Context, e *domain.ExtractionEvent) {
			outcome := "ok"
			if e.IsError {
				outcome = "malformed"
			}
			m.extractions.WithLabelValues(e.Target, outcome).Inc()
		},
		OnRunFinish: func(_ context.Context, e *domain.RunEvent) {
			m.runs.WithLabelValues(string(e.Status)).Inc()
			m.runSteps.Observe(float64(e.Steps))
		},
	}
}

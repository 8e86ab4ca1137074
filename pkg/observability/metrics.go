package observability

import (
	"context"
	"fmt"

	"github.com/aretw0/libstate/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by a runner's lifecycle hooks.
type Metrics struct {
	Runs        *prometheus.CounterVec
	Visits      *prometheus.CounterVec
	Transitions *prometheus.CounterVec
	Duration    prometheus.Histogram
	Running     prometheus.Gauge
}

// NewMetrics creates the collectors under namespace and registers them with reg.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished runs by outcome.",
		}, []string{"outcome"}),
		Visits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_visits_total",
			Help:      "State visits, self-loops included.",
		}, []string{"state"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Transitions taken between states.",
		}, []string{"from", "to"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of finished runs.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
		Running: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "runs_in_flight",
			Help:      "Runs currently executing.",
		}),
	}

	for _, c := range []prometheus.Collector{m.Runs, m.Visits, m.Transitions, m.Duration, m.Running} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that update m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(context.Context, *domain.RunEvent) {
			m.Running.Inc()
		},
		OnRunEnd: func(_ context.Context, e *domain.RunEvent) {
			m.Running.Dec()
			m.Runs.WithLabelValues(string(e.Outcome)).Inc()
			m.Duration.Observe(e.Duration.Seconds())
		},
		OnVisit: func(_ context.Context, e *domain.VisitEvent) {
			m.Visits.WithLabelValues(fmt.Sprint(e.StateID)).Inc()
		},
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(fmt.Sprint(e.From), fmt.Sprint(e.To)).Inc()
		},
	}
}

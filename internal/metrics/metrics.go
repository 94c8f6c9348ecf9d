// Package metrics exposes walk generation and replay as Prometheus metrics.
package metrics

import (
	"context"

	"github.com/aretw0/errfix/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the errfix metrics.
type Collector struct {
	Walks              prometheus.Counter
	Steps              prometheus.Histogram
	DeadEnds           *prometheus.CounterVec
	StateCoverage      prometheus.Histogram
	TransitionCoverage prometheus.Histogram
	Invocations        *prometheus.CounterVec
}

var coverageBuckets = []float64{10, 25, 50, 75, 90, 100}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		Walks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "errfix_walks_total",
			Help: "Total number of walks generated",
		}),
		Steps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "errfix_walk_steps",
			Help:    "Number of steps per generated walk",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		DeadEnds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "errfix_dead_ends_total",
			Help: "Walks stopped on a dead end, by state",
		}, []string{"state"}),
		StateCoverage: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "errfix_state_coverage_percent",
			Help:    "State coverage of generated walks",
			Buckets: coverageBuckets,
		}),
		TransitionCoverage: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "errfix_transition_coverage_percent",
			Help:    "Transition coverage of generated walks",
			Buckets: coverageBuckets,
		}),
		Invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "errfix_driver_invocations_total",
			Help: "Driver calls made while replaying walks",
		}, []string{"kind", "result"}),
	}
	reg.MustRegister(c.Walks, c.Steps, c.DeadEnds, c.StateCoverage, c.TransitionCoverage, c.Invocations)
	return c
}

// Hooks returns lifecycle hooks that record into the collector.
func (c *Collector) Hooks() domain.WalkHooks {
	return domain.WalkHooks{
		OnDeadEnd: func(_ context.Context, e *domain.DeadEndEvent) {
			c.DeadEnds.WithLabelValues(e.State).Inc()
		},
		OnWalkComplete: func(_ context.Context, e *domain.WalkEvent) {
			c.Walks.Inc()
			c.Steps.Observe(float64(e.Walk.Len()))
			c.StateCoverage.Observe(e.Walk.StateCoverage)
			c.TransitionCoverage.Observe(e.Walk.TransitionCoverage)
		},
		OnInvoke: func(_ context.Context, e *domain.InvokeEvent) {
			result := "ok"
			if e.IsError {
				result = "error"
			}
			c.Invocations.WithLabelValues(string(e.Kind), result).Inc()
		},
	}
}

// Package metrics exposes Prometheus collectors describing build runs.
//
// All methods are safe on a nil *Metrics, so callers that do not care about
// metrics can pass nil instead of threading a no-op implementation around.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "assetgraph"

// Metrics groups the collectors updated by the analyzer, executor and app.
type Metrics struct {
	actions        *prometheus.CounterVec
	actionDuration *prometheus.HistogramVec
	skipped        prometheus.Counter
	dirty          prometheus.Gauge
	runs           *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Number of actions executed, by action kind and outcome.",
		}, []string{"action", "outcome"}),
		actionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "action_duration_seconds",
			Help:      "Duration of action executions.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 4, 8),
		}, []string{"action"}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_skipped_total",
			Help:      "Number of clean nodes skipped by the executor.",
		}),
		dirty: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dirty_nodes",
			Help:      "Size of the dirty set computed by the most recent analysis.",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Number of build runs, by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.actions, m.actionDuration, m.skipped, m.dirty, m.runs)
	return m
}

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// ObserveAction records one finished action.
func (m *Metrics) ObserveAction(action string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(action, outcome(err)).Inc()
	m.actionDuration.WithLabelValues(action).Observe(d.Seconds())
}

// NodeSkipped records a clean node that was not rebuilt.
func (m *Metrics) NodeSkipped() {
	if m == nil {
		return
	}
	m.skipped.Inc()
}

// SetDirty records the size of the latest dirty set.
func (m *Metrics) SetDirty(n int) {
	if m == nil {
		return
	}
	m.dirty.Set(float64(n))
}

// RunFinished records the outcome of a whole build run.
func (m *Metrics) RunFinished(err error) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome(err)).Inc()
}

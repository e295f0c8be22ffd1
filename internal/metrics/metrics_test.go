package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveAction("exec", 20*time.Millisecond, nil)
	m.ObserveAction("exec", 5*time.Millisecond, errors.New("exit status 1"))
	m.ObserveAction("concat", time.Millisecond, nil)
	m.NodeSkipped()
	m.NodeSkipped()
	m.SetDirty(7)
	m.RunFinished(nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.actions.WithLabelValues("exec", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.actions.WithLabelValues("exec", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.actions.WithLabelValues("concat", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.skipped))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.dirty))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("success")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "assetgraph_action_duration_seconds")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAction("exec", time.Second, nil)
		m.NodeSkipped()
		m.SetDirty(3)
		m.RunFinished(errors.New("x"))
	})
}

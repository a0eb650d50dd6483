package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommandMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCommandMetrics(reg)
	require.NotNil(t, m)

	m.Record("show", false, 10*time.Millisecond)
	m.Record("show", true, 20*time.Millisecond)
	m.Record("search", false, 5*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Dispatched.WithLabelValues("show")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Dispatched.WithLabelValues("search")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Errors.WithLabelValues("show")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.Errors.WithLabelValues("search")))
}

func TestCommandMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCommandMetrics(reg)

	assert.Panics(t, func() {
		NewCommandMetrics(reg)
	})
}

func TestCommandMetrics_NilReceiver(t *testing.T) {
	var m *CommandMetrics

	assert.NotPanics(t, func() {
		m.Record("show", true, time.Second)
	})
}

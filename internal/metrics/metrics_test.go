package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTasksTotalIncrementsByLabel(t *testing.T) {
	TasksTotal.Reset()
	TasksTotal.WithLabelValues("openai", "gpt-4", "discrete_combined").Inc()
	TasksTotal.WithLabelValues("openai", "gpt-4", "discrete_combined").Inc()
	TasksTotal.WithLabelValues("claude", "claude-3", "hlcc_linear").Inc()

	var m dto.Metric
	require.NoError(t, TasksTotal.WithLabelValues("openai", "gpt-4", "discrete_combined").Write(&m))
	assert.Equal(t, 2.0, m.GetCounter().GetValue())
}

func TestVendorInFlightGaugeTracksConcurrency(t *testing.T) {
	VendorInFlight.Reset()
	VendorInFlight.WithLabelValues("gemini").Inc()
	VendorInFlight.WithLabelValues("gemini").Inc()
	VendorInFlight.WithLabelValues("gemini").Dec()

	var m dto.Metric
	require.NoError(t, VendorInFlight.WithLabelValues("gemini").Write(&m))
	assert.Equal(t, 1.0, m.GetGauge().GetValue())
}

func TestRegisterIsIdempotentFree(t *testing.T) {
	registry := prometheus.NewRegistry()
	assert.NoError(t, registry.Register(TasksTotal))
	assert.NoError(t, registry.Register(TaskFailuresTotal))
	assert.NoError(t, registry.Register(VendorCallDuration))
	assert.NoError(t, registry.Register(VendorInFlight))
	assert.NoError(t, registry.Register(RunResultsTotal))
}

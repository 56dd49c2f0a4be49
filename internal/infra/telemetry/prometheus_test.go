package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustable/internal/domain"
)

func TestNewPrometheusMetrics(t *testing.T) {
	m := NewPrometheusMetrics(prometheus.NewRegistry())
	assert.NotNil(t, m)
	assert.NotNil(t, m.toolCalls)
	assert.NotNil(t, m.toolDuration)
	assert.NotNil(t, m.estimatedScore)
}

func TestNewPrometheusMetrics_UsesProvidedRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewPrometheusMetrics(registry)
	m.ObserveToolCall(domain.ToolCallMetric{
		Tool:     "estimate_ai_visibility",
		Status:   domain.CallStatusSuccess,
		Duration: 2 * time.Millisecond,
	})
	m.ObserveEstimatedScore(88, "excellent")

	metrics, err := registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(metrics))
	for _, m := range metrics {
		names = append(names, m.GetName())
	}

	assert.Contains(t, names, "trustable_tool_calls_total")
	assert.Contains(t, names, "trustable_tool_call_duration_seconds")
	assert.Contains(t, names, "trustable_estimated_score")
}

func TestPrometheusMetrics_ObserveToolCall(t *testing.T) {
	m := NewPrometheusMetrics(prometheus.NewRegistry())

	m.ObserveToolCall(domain.ToolCallMetric{Tool: "get_trustable_score", Status: domain.CallStatusSuccess})
	m.ObserveToolCall(domain.ToolCallMetric{Tool: "get_trustable_score", Status: domain.CallStatusInvalid})
	m.ObserveToolCall(domain.ToolCallMetric{Tool: "get_trustable_score", Status: domain.CallStatusInvalid})
	m.ObserveToolCall(domain.ToolCallMetric{Tool: "unknown"})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.toolCalls.WithLabelValues("get_trustable_score", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.toolCalls.WithLabelValues("get_trustable_score", "invalid_argument")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.toolCalls.WithLabelValues("unknown", "success")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.toolDuration))
}

func TestPrometheusMetrics_ObserveEstimatedScore(t *testing.T) {
	m := NewPrometheusMetrics(prometheus.NewRegistry())

	m.ObserveEstimatedScore(28, "low")
	m.ObserveEstimatedScore(30, "low")
	m.ObserveEstimatedScore(88, "excellent")

	assert.Equal(t, 2, testutil.CollectAndCount(m.estimatedScore))
}

func TestNoopMetrics(t *testing.T) {
	var m domain.Metrics = NewNoopMetrics()
	m.ObserveToolCall(domain.ToolCallMetric{Tool: "x"})
	m.ObserveEstimatedScore(1, "minimal")
}

package telemetry

import "trustable/internal/domain"

type NoopMetrics struct{}

func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) ObserveToolCall(_ domain.ToolCallMetric) {}

func (n *NoopMetrics) ObserveEstimatedScore(_ int, _ string) {}

var _ domain.Metrics = (*NoopMetrics)(nil)

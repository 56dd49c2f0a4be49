package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"trustable/internal/domain"
)

const metricsNamespace = "trustable"

type PrometheusMetrics struct {
	toolCalls      *prometheus.CounterVec
	toolDuration   *prometheus.HistogramVec
	estimatedScore *prometheus.HistogramVec
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		toolCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "tool_calls_total",
				Help:      "Total number of tool calls by outcome",
			},
			[]string{"tool", "status"},
		),
		toolDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "tool_call_duration_seconds",
				Help:      "Duration of tool calls in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"tool"},
		),
		estimatedScore: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "estimated_score",
				Help:      "Distribution of estimated Trustable Scores",
				Buckets:   []float64{20, 40, 60, 80, 100},
			},
			[]string{"rating"},
		),
	}
}

func (p *PrometheusMetrics) ObserveToolCall(metric domain.ToolCallMetric) {
	status := metric.Status
	if status == "" {
		status = domain.CallStatusSuccess
	}
	p.toolCalls.WithLabelValues(metric.Tool, string(status)).Inc()
	p.toolDuration.WithLabelValues(metric.Tool).Observe(metric.Duration.Seconds())
}

func (p *PrometheusMetrics) ObserveEstimatedScore(score int, rating string) {
	p.estimatedScore.WithLabelValues(rating).Observe(float64(score))
}

var _ domain.Metrics = (*PrometheusMetrics)(nil)

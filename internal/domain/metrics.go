package domain

import "time"

// CallStatus labels the outcome of a tool call.
type CallStatus string

const (
	// CallStatusSuccess indicates the tool produced a result.
	CallStatusSuccess CallStatus = "success"
	// CallStatusInvalid indicates the arguments were rejected.
	CallStatusInvalid CallStatus = "invalid_argument"
	// CallStatusUnknownTool indicates the name matched no tool.
	CallStatusUnknownTool CallStatus = "unknown_tool"
	// CallStatusError indicates any other failure.
	CallStatusError CallStatus = "error"
)

// StatusFromError classifies a dispatch error for metrics.
func StatusFromError(err error) CallStatus {
	if err == nil {
		return CallStatusSuccess
	}
	code, _ := CodeFrom(err)
	switch code {
	case CodeNotFound:
		return CallStatusUnknownTool
	case CodeInvalidArgument:
		return CallStatusInvalid
	default:
		return CallStatusError
	}
}

// ToolCallMetric captures a single dispatched tool call.
type ToolCallMetric struct {
	Tool     string
	Status   CallStatus
	Duration time.Duration
}

// Metrics records tool server observations.
type Metrics interface {
	ObserveToolCall(metric ToolCallMetric)
	ObserveEstimatedScore(score int, rating string)
}

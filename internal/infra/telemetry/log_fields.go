package telemetry

import (
	"time"

	"go.uber.org/zap"
)

const (
	FieldEvent      = "event"
	FieldTool       = "tool"
	FieldTransport  = "transport"
	FieldStatus     = "status"
	FieldScore      = "score"
	FieldRating     = "rating"
	FieldDurationMs = "duration_ms"
	FieldLogSource  = "log_source"
	FieldRequestID  = "request_id"
	FieldTraceID    = "trace_id"
	FieldSpanID     = "span_id"
)

const (
	EventServeStart    = "serve_start"
	EventServeStop     = "serve_stop"
	EventConfigReload  = "config_reload"
	EventConfigInvalid = "config_invalid"
	EventAuthRejected  = "auth_rejected"
)

const (
	LogSourceCore = "core"
	LogSourceHTTP = "http"
	LogSourceCLI  = "cli"
)

func EventField(event string) zap.Field {
	return zap.String(FieldEvent, event)
}

func ToolField(name string) zap.Field {
	return zap.String(FieldTool, name)
}

func TransportField(transport string) zap.Field {
	return zap.String(FieldTransport, transport)
}

func StatusField(status string) zap.Field {
	return zap.String(FieldStatus, status)
}

func ScoreField(score int) zap.Field {
	return zap.Int(FieldScore, score)
}

func RatingField(rating string) zap.Field {
	return zap.String(FieldRating, rating)
}

func DurationField(duration time.Duration) zap.Field {
	return zap.Int64(FieldDurationMs, duration.Milliseconds())
}

func RequestIDField(value string) zap.Field {
	return zap.String(FieldRequestID, value)
}

func TraceIDField(value string) zap.Field {
	return zap.String(FieldTraceID, value)
}

func SpanIDField(value string) zap.Field {
	return zap.String(FieldSpanID, value)
}

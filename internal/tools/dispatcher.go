package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"go.uber.org/zap"

	"trustable/internal/domain"
	"trustable/internal/infra/telemetry"
	"trustable/internal/scoring"
)

const opInvoke = "tools.Invoke"

// Dispatcher routes tool calls to their handlers. It holds no mutable state
// and is safe for concurrent use.
type Dispatcher struct {
	logger  *zap.Logger
	metrics domain.Metrics
	schemas map[domain.ToolName]*jsonschema.Resolved
	now     func() time.Time
}

// DispatcherOptions configures a Dispatcher.
type DispatcherOptions struct {
	Logger  *zap.Logger
	Metrics domain.Metrics
}

type trustableScoreArgs struct {
	Brand string `json:"brand"`
}

type geoRecommendationArgs struct {
	CurrentScore *int `json:"currentScore,omitempty"`
}

func NewDispatcher(opts DispatcherOptions) (*Dispatcher, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	schemas, err := resolveSchemas()
	if err != nil {
		return nil, err
	}
	return &Dispatcher{
		logger:  logger.Named("tools"),
		metrics: metrics,
		schemas: schemas,
		now:     time.Now,
	}, nil
}

// Tools returns the catalog served by this dispatcher.
func (d *Dispatcher) Tools() []domain.ToolDescriptor {
	return List()
}

// Invoke runs the named tool with raw JSON arguments. Empty or null arguments
// are treated as an empty object.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args json.RawMessage) (any, error) {
	start := d.now()
	result, err := d.invoke(ctx, name, args)
	elapsed := d.now().Sub(start)

	status := domain.StatusFromError(err)
	d.metrics.ObserveToolCall(domain.ToolCallMetric{
		Tool:     metricToolLabel(name),
		Status:   status,
		Duration: elapsed,
	})

	logger := telemetry.LoggerWithRequest(ctx, d.logger)
	if err != nil {
		logger.Warn("tool call rejected",
			telemetry.ToolField(name),
			telemetry.StatusField(string(status)),
			telemetry.DurationField(elapsed),
			zap.Error(err),
		)
		return nil, err
	}
	logger.Debug("tool call completed",
		telemetry.ToolField(name),
		telemetry.StatusField(string(status)),
		telemetry.DurationField(elapsed),
	)
	return result, nil
}

func (d *Dispatcher) invoke(ctx context.Context, name string, args json.RawMessage) (any, error) {
	tool, ok := domain.ParseToolName(name)
	if !ok {
		return nil, domain.UnknownToolError(opInvoke, name)
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.E(domain.CodeCanceled, opInvoke, "", err)
	}

	raw, fields, err := decodeArguments(tool, args)
	if err != nil {
		return nil, err
	}
	if err := d.validate(tool, fields); err != nil {
		return nil, err
	}

	switch tool {
	case domain.ToolGetTrustableScore:
		var in trustableScoreArgs
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, domain.InvalidArgumentError(opInvoke, tool, err)
		}
		return newScoreReport(in.Brand), nil
	case domain.ToolEstimateAIVisibility:
		in, err := signalsFromFields(fields)
		if err != nil {
			return nil, domain.InvalidArgumentError(opInvoke, tool, err)
		}
		result := scoring.Evaluate(in.Resolve())
		d.metrics.ObserveEstimatedScore(result.Score, result.Rating.String())
		telemetry.LoggerWithRequest(ctx, d.logger).Debug("visibility estimated",
			telemetry.ScoreField(result.Score),
			telemetry.RatingField(result.Rating.String()),
		)
		return newVisibilityEstimate(result), nil
	case domain.ToolGetGEORecommendations:
		var in geoRecommendationArgs
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, domain.InvalidArgumentError(opInvoke, tool, err)
		}
		return newGEORecommendations(), nil
	case domain.ToolExplainTrustableScore:
		return newScoreExplanation(), nil
	default:
		return nil, domain.E(domain.CodeInternal, opInvoke, fmt.Sprintf("no handler for tool %s", tool), nil)
	}
}

// validate enforces required fields first so that an absent field reports
// ErrMissingRequiredField rather than a generic schema failure.
func (d *Dispatcher) validate(tool domain.ToolName, fields map[string]any) error {
	desc, ok := Lookup(tool)
	if !ok {
		return domain.UnknownToolError(opInvoke, string(tool))
	}
	for _, name := range desc.RequiredFields() {
		if isMissing(fields[name]) {
			return domain.MissingFieldError(opInvoke, tool, name)
		}
	}
	schema, ok := d.schemas[tool]
	if !ok {
		return nil
	}
	if err := schema.Validate(fields); err != nil {
		return domain.InvalidArgumentError(opInvoke, tool, err)
	}
	return nil
}

func decodeArguments(tool domain.ToolName, args json.RawMessage) (json.RawMessage, map[string]any, error) {
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.RawMessage("{}"), map[string]any{}, nil
	}
	var fields map[string]any
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, nil, domain.InvalidArgumentError(opInvoke, tool, fmt.Errorf("arguments must be a JSON object: %w", err))
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return json.RawMessage(trimmed), fields, nil
}

// signalsFromFields reads estimate signals from schema-validated fields.
// JSON numbers such as 4.0 satisfy an integer schema, so integral floats are
// accepted and converted.
func signalsFromFields(fields map[string]any) (scoring.SignalsInput, error) {
	var (
		in  scoring.SignalsInput
		err error
	)
	if in.Brand, err = stringField(fields, "brand"); err != nil {
		return in, err
	}
	if in.PlatformCount, err = intField(fields, "platformCount"); err != nil {
		return in, err
	}
	if in.ContentAge, err = intField(fields, "contentAge"); err != nil {
		return in, err
	}
	if in.HasWikidata, err = boolField(fields, "hasWikidata"); err != nil {
		return in, err
	}
	if in.HasGoogleBusiness, err = boolField(fields, "hasGoogleBusiness"); err != nil {
		return in, err
	}
	if in.HasSchemaMarkup, err = boolField(fields, "hasSchemaMarkup"); err != nil {
		return in, err
	}
	if in.HasComparisonContent, err = boolField(fields, "hasComparisonContent"); err != nil {
		return in, err
	}
	return in, nil
}

func intField(fields map[string]any, name string) (*int, error) {
	value, ok := fields[name]
	if !ok || value == nil {
		return nil, nil
	}
	f, ok := value.(float64)
	if !ok || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, fmt.Errorf("%s must be an integer, got %v", name, value)
	}
	n := int(f)
	return &n, nil
}

func boolField(fields map[string]any, name string) (*bool, error) {
	value, ok := fields[name]
	if !ok || value == nil {
		return nil, nil
	}
	b, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("%s must be a boolean, got %v", name, value)
	}
	return &b, nil
}

func stringField(fields map[string]any, name string) (*string, error) {
	value, ok := fields[name]
	if !ok || value == nil {
		return nil, nil
	}
	str, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%s must be a string, got %v", name, value)
	}
	return &str, nil
}

func isMissing(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

// metricToolLabel bounds label cardinality for names outside the catalog.
func metricToolLabel(name string) string {
	if tool, ok := domain.ParseToolName(name); ok {
		return string(tool)
	}
	return "unknown"
}

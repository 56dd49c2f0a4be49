package domain

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeInternal        ErrorCode = "INTERNAL"
	CodeCanceled        ErrorCode = "CANCELED"
)

var (
	ErrUnknownTool          = errors.New("unknown tool")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidArgument      = errors.New("invalid argument")
)

const (
	MetaTool  = "tool"
	MetaField = "field"
)

type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
	Meta    map[string]string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Op == "" {
		if msg == "" {
			return string(e.Code)
		}
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	if msg == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, msg)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func E(code ErrorCode, op, msg string, cause error) *Error {
	if msg == "" && cause != nil {
		msg = cause.Error()
	}
	return &Error{
		Code:    code,
		Op:      op,
		Message: msg,
		Cause:   cause,
	}
}

// WithMeta attaches a key/value pair and returns the same error.
func (e *Error) WithMeta(key, value string) *Error {
	if e == nil {
		return nil
	}
	if e.Meta == nil {
		e.Meta = make(map[string]string, 2)
	}
	e.Meta[key] = value
	return e
}

// UnknownToolError reports a call to a name outside the tool catalog.
func UnknownToolError(op, name string) *Error {
	return E(CodeNotFound, op, fmt.Sprintf("unknown tool: %s", name), ErrUnknownTool).
		WithMeta(MetaTool, name)
}

// MissingFieldError reports an absent required argument.
func MissingFieldError(op string, tool ToolName, field string) *Error {
	return E(CodeInvalidArgument, op, fmt.Sprintf("%s: missing required field %q", tool, field), ErrMissingRequiredField).
		WithMeta(MetaTool, string(tool)).
		WithMeta(MetaField, field)
}

// InvalidArgumentError reports arguments that cannot be decoded or fail schema validation.
func InvalidArgumentError(op string, tool ToolName, cause error) *Error {
	msg := string(tool) + ": invalid arguments"
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return &Error{
		Code:    CodeInvalidArgument,
		Op:      op,
		Message: msg,
		Cause:   errors.Join(ErrInvalidArgument, cause),
		Meta:    map[string]string{MetaTool: string(tool)},
	}
}

func CodeFrom(err error) (ErrorCode, bool) {
	if err == nil {
		return "", false
	}
	var domainErr *Error
	if errors.As(err, &domainErr) && domainErr.Code != "" {
		return domainErr.Code, true
	}
	switch {
	case errors.Is(err, ErrUnknownTool):
		return CodeNotFound, true
	case errors.Is(err, ErrMissingRequiredField), errors.Is(err, ErrInvalidArgument):
		return CodeInvalidArgument, true
	default:
		return "", false
	}
}

package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal   ErrorCode = "INTERNAL_ERROR"
	CodeValidation ErrorCode = "VALIDATION_ERROR"

	// Field-level validation errors
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Generation specific errors
	CodeLoadError            ErrorCode = "LOAD_ERROR"
	CodeInvalidConfiguration ErrorCode = "INVALID_CONFIGURATION"
	CodeInsufficientPool     ErrorCode = "INSUFFICIENT_POOL"
	CodeRenderError          ErrorCode = "RENDER_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Context map[string]any `json:"details,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Details: e.Context,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

// NewLoadError reports a malformed or missing bank source. It is fatal to the
// whole request.
func NewLoadError(message string, cause error) *DomainError {
	return NewError(CodeLoadError, message, cause)
}

// NewInvalidConfigurationError reports unusable generation parameters. The
// loaded bank remains valid for a retry with different parameters.
func NewInvalidConfigurationError(message string) *DomainError {
	return NewError(CodeInvalidConfiguration, message, nil)
}

// NewInsufficientPoolError reports that the eligible candidate pool cannot
// satisfy the requested draw. It carries the available, needed and avoided
// counts so the caller can explain the shortfall.
func NewInsufficientPoolError(available, needed, avoided int) *DomainError {
	err := NewError(CodeInsufficientPool, fmt.Sprintf(
		"not enough questions in the bank: %d available, %d needed (%d excluded as already used)",
		available, needed, avoided), nil)
	err.Context = map[string]any{
		"available": available,
		"needed":    needed,
		"avoided":   avoided,
	}
	return err
}

func NewRenderError(cause error) *DomainError {
	return NewError(CodeRenderError, "failed to render exam document", cause)
}

// ValidationError represents a single failed field check on a request
type ValidationError struct {
	Field   string    `json:"field"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field errors for a whole request
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeMissingField,
		Message: fmt.Sprintf("field '%s' is required", field),
	}
}

func NewInvalidFormatError(field string, value any) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeInvalidFormat,
		Message: fmt.Sprintf("field '%s' has invalid value: %v", field, value),
	}
}

func NewOutOfRangeError(field string, value, min, max any) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeOutOfRange,
		Message: fmt.Sprintf("field '%s' value %v is out of range [%v, %v]", field, value, min, max),
	}
}

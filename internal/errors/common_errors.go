package errors

import (
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeNotFound    ErrorType = "NOT_FOUND"
	ErrTypeSchema      ErrorType = "SCHEMA"
	ErrTypeParsing     ErrorType = "PARSING"
	ErrTypeValidation  ErrorType = "VALIDATION"
	ErrTypeUnsupported ErrorType = "UNSUPPORTED"
)

// Context keys recorded on AppError. Everything except ContextResource is
// surfaced as a problem details extension.
const (
	ContextResource    = "resource"
	ContextSource      = "source"
	ContextMissing     = "missing"
	ContextConflicting = "conflicting"
)

// Resources an AppError can refer to
const (
	ResourceDataset = "dataset"
	ResourceChart   = "chart"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Resource returns the resource recorded under ContextResource, or ""
func (e *AppError) Resource() string {
	resource, _ := e.Context[ContextResource].(string)
	return resource
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

func NewNotFoundError(resource string, cause error) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), cause)
}

func NewSchemaError(message string, cause error) *AppError {
	return NewAppError(ErrTypeSchema, message, cause)
}

func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

func NewAppValidationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeValidation, message, cause)
}

// NewUnsupportedError creates an error for a request the service cannot honour
func NewUnsupportedError(message string, cause error) *AppError {
	return NewAppError(ErrTypeUnsupported, message, cause)
}

// DatasetNotFound reports a production workbook missing at source
func DatasetNotFound(source string, cause error) *AppError {
	return NewNotFoundError("production dataset", cause).
		WithContext(ContextResource, ResourceDataset).
		WithContext(ContextSource, source)
}

// DatasetUnreadable reports a workbook that exists but holds no readable table
func DatasetUnreadable(source string, cause error) *AppError {
	message := "production dataset is unreadable"
	if cause != nil {
		message = cause.Error()
	}
	return NewParsingError(message, cause).
		WithContext(ContextResource, ResourceDataset).
		WithContext(ContextSource, source)
}

// SchemaMismatch reports required columns that are missing or that collide
// with their renamed form. Empty lists are left out of the context.
func SchemaMismatch(message string, missing, conflicting []string, cause error) *AppError {
	err := NewSchemaError(message, cause).WithContext(ContextResource, ResourceDataset)
	if len(missing) > 0 {
		err.WithContext(ContextMissing, missing)
	}
	if len(conflicting) > 0 {
		err.WithContext(ContextConflicting, conflicting)
	}
	return err
}

// UnknownChart reports a chart id outside the fixed chart set
func UnknownChart(cause error) *AppError {
	return NewNotFoundError("chart", cause).WithContext(ContextResource, ResourceChart)
}

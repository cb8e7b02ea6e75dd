package utils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "validation"
	ErrorTypeIO          ErrorType = "io"
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeTranslation ErrorType = "translation"
	ErrorTypeOCR         ErrorType = "ocr"
	ErrorTypeRender      ErrorType = "render"
	ErrorTypeConversion  ErrorType = "conversion"
	ErrorTypeSystem      ErrorType = "system"
	ErrorTypeUnsupported ErrorType = "unsupported"
	ErrorTypeTimeout     ErrorType = "timeout"
	ErrorTypePermission  ErrorType = "permission"
	ErrorTypeNotFound    ErrorType = "not_found"
)

// AppError represents an application-specific error with context
type AppError struct {
	Type        ErrorType
	Message     string
	Cause       error
	Context     map[string]interface{}
	Recoverable bool
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError of the same type
func (e *AppError) Is(target error) bool {
	var t *AppError
	if errors.As(target, &t) {
		return e.Type == t.Type
	}
	return false
}

// WithContext adds context information to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// AsRecoverable marks the error as worth retrying
func (e *AppError) AsRecoverable() *AppError {
	e.Recoverable = true
	return e
}

// NewError creates a new application error
func NewError(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *AppError {
	return NewError(ErrorTypeValidation, message, cause)
}

// NewIOError creates an I/O error
func NewIOError(message string, cause error) *AppError {
	return NewError(ErrorTypeIO, message, cause)
}

// NewNetworkError creates a recoverable network error
func NewNetworkError(message string, cause error) *AppError {
	return NewError(ErrorTypeNetwork, message, cause).AsRecoverable()
}

// NewTranslationError creates a translation error
func NewTranslationError(message string, cause error) *AppError {
	return NewError(ErrorTypeTranslation, message, cause)
}

// NewOCRError creates an OCR error
func NewOCRError(message string, cause error) *AppError {
	return NewError(ErrorTypeOCR, message, cause)
}

// NewRenderError creates a page rendering error
func NewRenderError(message string, cause error) *AppError {
	return NewError(ErrorTypeRender, message, cause)
}

// NewConversionError creates a conversion error
func NewConversionError(message string, cause error) *AppError {
	return NewError(ErrorTypeConversion, message, cause)
}

// NewUnsupportedError creates an unsupported operation error
func NewUnsupportedError(message string, cause error) *AppError {
	return NewError(ErrorTypeUnsupported, message, cause)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(message string, cause error) *AppError {
	return NewError(ErrorTypeNotFound, message, cause)
}

// WrapError wraps an existing error with additional context.
// An empty errorType keeps the type of a wrapped AppError, or classifies the cause.
func WrapError(err error, errorType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) && errorType == "" {
		return &AppError{
			Type:        appErr.Type,
			Message:     message + ": " + appErr.Message,
			Cause:       appErr.Cause,
			Context:     appErr.Context,
			Recoverable: appErr.Recoverable,
		}
	}

	if errorType == "" {
		errorType = classifyError(err)
	}

	wrapped := &AppError{
		Type:    errorType,
		Message: message,
		Cause:   err,
		Context: make(map[string]interface{}),
	}
	if appErr != nil {
		wrapped.Recoverable = appErr.Recoverable
	}
	return wrapped
}

// classifyError automatically classifies an error based on its content
func classifyError(err error) ErrorType {
	if err == nil {
		return ErrorTypeSystem
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return ErrorTypeTimeout
	case errors.Is(err, os.ErrPermission) || strings.Contains(errStr, "permission denied"):
		return ErrorTypePermission
	case errors.Is(err, os.ErrNotExist) || strings.Contains(errStr, "no such file") || strings.Contains(errStr, "not found"):
		return ErrorTypeNotFound
	case strings.Contains(errStr, "connection") || strings.Contains(errStr, "network"):
		return ErrorTypeNetwork
	case strings.Contains(errStr, "invalid") || strings.Contains(errStr, "bad"):
		return ErrorTypeValidation
	default:
		return ErrorTypeSystem
	}
}

// IsRecoverable checks if an error is worth retrying
func IsRecoverable(err error) bool {
	if err == nil {
		return false
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Recoverable {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	switch GetErrorType(err) {
	case ErrorTypeTimeout, ErrorTypeNetwork:
		return true
	default:
		return false
	}
}

// GetErrorType extracts the error type from an error
func GetErrorType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return classifyError(err)
}

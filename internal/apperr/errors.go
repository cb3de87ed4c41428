// Package apperr defines the error taxonomy shared by the calculation packages
// and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// CodeValidation is the machine-readable code for rejected input.
const CodeValidation = "VALIDATION_ERROR"

// ValidationError reports an input that is outside its valid range. Inputs are
// rejected before any computation starts and are never clamped.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Invalid builds a ValidationError.
func Invalid(field string, value any, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// AppError is an error with an HTTP mapping.
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	StatusCode int            `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New creates an AppError.
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithDetails returns a copy of e carrying details. Sentinels stay untouched.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

var (
	ErrNotFound = New("NOT_FOUND", "Resource not found", http.StatusNotFound)

	ErrInvalidRequest = New("INVALID_REQUEST", "Invalid request parameters", http.StatusBadRequest)

	ErrUpstream = New("UPSTREAM_ERROR", "Upstream service failed", http.StatusBadGateway)

	ErrInternal = New("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
)

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ToAppError maps any error onto an AppError for transport. Unknown errors
// become ErrInternal.
func ToAppError(err error) *AppError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return &AppError{
			Code:       CodeValidation,
			Message:    ve.Error(),
			Details:    map[string]any{"field": ve.Field},
			StatusCode: http.StatusBadRequest,
		}
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return ErrInternal
}

// StatusOf returns the HTTP status an error maps to.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return ToAppError(err).StatusCode
}

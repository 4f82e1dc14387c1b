// Package apierror provides the error taxonomy shared by services and
// handlers, plus the standardized JSON error envelopes returned to clients.
// All errors surfaced to clients go through this package so that internal
// details (stack traces, DB errors, etc.) are never leaked.
package apierror

import "errors"

// Sentinel errors returned by services. Handlers map them onto HTTP statuses
// via StatusFor in the handler package.
var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnauthorized      = errors.New("invalid credentials")
	ErrForbidden         = errors.New("insufficient role")
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries one or more field-level validation failures.
// It doubles as the service-layer error type and the 422 response body.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string { return e.Detail }

// NewValidation wraps multiple field errors.
func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}

// Validationf builds a single-message validation error.
func Validationf(detail string) *ValidationError {
	return &ValidationError{Detail: detail}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// internal/common/errors/errors.go

// Package errors provides the standardized error taxonomy of the discovery
// service.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Caller supplied an out-of-range limit, offset, radius or filter value.
	// Surfaced immediately, never retried.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// The upstream catalog source failed or timed out. Surfaced to the
	// caller, who decides on retry, backoff or a cached fallback.
	ErrCodeCatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"

	// A single catalog entry failed shape validation. Logged and counted,
	// never thrown; the record is excluded from results.
	ErrCodeMalformedRecord ErrorCode = "MALFORMED_RECORD"

	// The category registry file is missing, unreadable or inconsistent.
	ErrCodeCategoryRegistryInvalid ErrorCode = "CATEGORY_REGISTRY_INVALID"

	// The cache layer failed; reads degrade to the underlying source.
	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"

	// A textual location could not be resolved to coordinates.
	ErrCodeGeocodeFailed ErrorCode = "GEOCODE_FAILED"
)

// StandardError is a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As chains.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// NewInvalidArgumentError creates a non-retryable validation error.
func NewInvalidArgumentError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidArgument,
		Message:   "Invalid request argument",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogUnavailableError wraps an upstream catalog failure. Marked
// retryable so callers can apply their own retry or fallback policy; the
// discovery service itself never retries.
func NewCatalogUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogUnavailable,
		Message:   "Business catalog is unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewMalformedRecordError describes a catalog entry that failed shape
// validation. It is logged and counted, never returned to callers.
func NewMalformedRecordError(recordID, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedRecord,
		Message:   "Catalog record failed shape validation",
		Details:   fmt.Sprintf("recordId: %s, %s", recordID, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCategoryRegistryInvalidError creates a non-retryable registry error.
func NewCategoryRegistryInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCategoryRegistryInvalid,
		Message:   "Category registry is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError wraps a cache-layer failure.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Cache is unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewGeocodeFailedError wraps a failed label-to-coordinates resolution.
func NewGeocodeFailedError(label string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGeocodeFailed,
		Message:   "Location label could not be resolved",
		Details:   fmt.Sprintf("label: %s, error: %s", label, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// CodeOf returns the ErrorCode carried by err, or "" when err is not a
// StandardError.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsRetryable reports whether err carries a retryable StandardError.
func IsRetryable(err error) bool {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Retryable
	}
	return false
}

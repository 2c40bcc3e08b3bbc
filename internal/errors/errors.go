package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound         = New(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists    = New(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation       = New(ErrCodeValidation, "validation error")
	ErrInvalidOperation = New(ErrCodeInvalidOperation, "invalid operation")
	ErrHTTPClient       = New(ErrCodeHTTPClient, "http client error")
	ErrDatabase         = New(ErrCodeDatabase, "database error")
	ErrSystem           = New(ErrCodeSystemError, "system error")
	ErrInternal         = New(ErrCodeInternal, "internal error")

	// Billing provider and vacation admission errors
	ErrUpstream    = New(ErrCodeUpstream, "billing provider error")
	ErrEmptyDetail = New(ErrCodeEmptyDetail, "subscription has no line items")
	ErrTooLate     = New(ErrCodeTooLate, "vacation starts after the earliest billing attempt")
	ErrOverlap     = New(ErrCodeOverlap, "overlapping vacation request")
	ErrProcessing  = New(ErrCodeProcessing, "post-admission processing failed")

	// maps errors to http status codes, most specific first.
	// An error may carry several marks.
	statusCodes = []struct {
		err    error
		status int
	}{
		{ErrTooLate, http.StatusBadRequest},
		{ErrOverlap, http.StatusConflict},
		{ErrEmptyDetail, http.StatusBadGateway},
		{ErrUpstream, http.StatusBadGateway},
		{ErrProcessing, http.StatusInternalServerError},
		{ErrValidation, http.StatusBadRequest},
		{ErrInvalidOperation, http.StatusBadRequest},
		{ErrNotFound, http.StatusNotFound},
		{ErrAlreadyExists, http.StatusConflict},
		{ErrDatabase, http.StatusInternalServerError},
		{ErrHTTPClient, http.StatusInternalServerError},
		{ErrSystem, http.StatusInternalServerError},
		{ErrInternal, http.StatusInternalServerError},
	}
)

const (
	ErrCodeHTTPClient       = "http_client_error"
	ErrCodeSystemError      = "system_error"
	ErrCodeInternal         = "internal_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeAlreadyExists    = "already_exists"
	ErrCodeValidation       = "validation_error"
	ErrCodeInvalidOperation = "invalid_operation"
	ErrCodeDatabase         = "database_error"
	ErrCodeUpstream         = "upstream_error"
	ErrCodeEmptyDetail      = "empty_detail"
	ErrCodeTooLate          = "too_late"
	ErrCodeOverlap          = "overlap"
	ErrCodeProcessing       = "processing_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

// New creates a new InternalError
func New(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUpstream checks if an error came from the billing provider
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream) || errors.Is(err, ErrEmptyDetail)
}

// IsOverlap checks if an error is a vacation overlap conflict
func IsOverlap(err error) bool {
	return errors.Is(err, ErrOverlap)
}

// IsTooLate checks if an error is an earliest-billing-date rejection
func IsTooLate(err error) bool {
	return errors.Is(err, ErrTooLate)
}

func HTTPStatusFromErr(err error) int {
	for _, sc := range statusCodes {
		if errors.Is(err, sc.err) {
			return sc.status
		}
	}
	return http.StatusInternalServerError
}

package httpclient

import (
	goerrors "errors"
	"fmt"

	"github.com/coachportal/portalproxy/internal/errors"
)

// Error is a provider response with a status of 400 or above
type Error struct {
	*errors.InternalError
	StatusCode int
	Response   []byte
}

func (e *Error) Unwrap() error {
	return e.InternalError.Unwrap()
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider responded with status %d", e.StatusCode)
}

// NewError records the provider's status and raw body
func NewError(statusCode int, response []byte) *Error {
	return &Error{
		InternalError: errors.New(errors.ErrCodeHTTPClient, "provider error response"),
		StatusCode:    statusCode,
		Response:      response,
	}
}

// IsHTTPError finds the provider response error anywhere in err's chain
func IsHTTPError(err error) (*Error, bool) {
	var httpErr *Error
	if goerrors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

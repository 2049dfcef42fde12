package adminclient

import (
	"errors"
	"fmt"
)

// APIError is a request the backend received and rejected. The HTTP status is
// preserved because callers dispatch on it, with Code as the stable secondary
// discriminator.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("admin API %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("admin API %d (%s)", e.StatusCode, e.Code)
}

// TransportError is a request that never produced an HTTP response: DNS
// failure, connection refused, timeout. Distinguished from APIError because
// the backend state is unknown after one of these.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("admin API unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusOf returns the HTTP status behind err, or 0 for transport failures
// and non-API errors.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// CodeOf returns the stable backend code behind err, or "" when there is none.
func CodeOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

// IsTransport reports whether err is a network-level failure.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

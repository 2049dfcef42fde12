package workflow

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"amoria/pkg/adminclient"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		severity  Severity
		retryable bool
		contains  string
	}{
		{
			name:      "network failure",
			err:       &adminclient.TransportError{Err: errors.New("connection refused")},
			severity:  SeverityWarning,
			retryable: true,
			contains:  "connection",
		},
		{
			name:     "bad request",
			err:      &adminclient.APIError{StatusCode: http.StatusBadRequest, Code: "bad_request"},
			severity: SeverityError,
			contains: "invalid",
		},
		{
			name:     "expired session",
			err:      &adminclient.APIError{StatusCode: http.StatusUnauthorized},
			severity: SeverityWarning,
			contains: "Log in again",
		},
		{
			name:     "forbidden",
			err:      &adminclient.APIError{StatusCode: http.StatusForbidden},
			severity: SeverityError,
			contains: "permission",
		},
		{
			name:     "stale search",
			err:      &adminclient.APIError{StatusCode: http.StatusNotFound},
			severity: SeverityError,
			contains: "Run the search again",
		},
		{
			name:     "already selected",
			err:      &adminclient.APIError{StatusCode: http.StatusConflict, Code: "already_selected"},
			severity: SeverityError,
			contains: "already been selected",
		},
		{
			name:     "unusable record",
			err:      &adminclient.APIError{StatusCode: http.StatusUnprocessableEntity},
			severity: SeverityError,
			contains: "different person",
		},
		{
			name:      "rate limited",
			err:       &adminclient.APIError{StatusCode: http.StatusTooManyRequests},
			severity:  SeverityWarning,
			retryable: true,
			contains:  "Wait a moment",
		},
		{
			name:      "server error",
			err:       &adminclient.APIError{StatusCode: http.StatusBadGateway},
			severity:  SeverityError,
			retryable: true,
			contains:  "Try again shortly",
		},
		{
			name:     "unmapped status",
			err:      &adminclient.APIError{StatusCode: http.StatusTeapot},
			severity: SeverityError,
			contains: "Something went wrong",
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			severity: SeverityError,
			contains: "Something went wrong",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			feedback := Classify(tc.err)
			assert.Equal(t, tc.severity, feedback.Severity)
			assert.Equal(t, tc.retryable, feedback.Retryable)
			assert.Contains(t, feedback.Message, tc.contains)
		})
	}
}

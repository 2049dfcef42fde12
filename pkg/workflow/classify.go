package workflow

import (
	"net/http"

	"amoria/pkg/adminclient"
)

// Severity is how a failure should be presented to the operator.
type Severity string

const (
	// SeverityWarning marks transient conditions the operator can wait out
	// or fix themselves.
	SeverityWarning Severity = "warning"

	// SeverityError marks failures that need a different action, not a
	// plain retry.
	SeverityError Severity = "error"
)

// Feedback is operator-facing guidance derived from a failed backend call.
type Feedback struct {
	Severity Severity
	Message  string

	// Retryable reports whether repeating the same confirm can succeed.
	// When false the operator needs a different action first.
	Retryable bool
}

// Classify maps a failed admin-client call onto operator guidance. Dispatch
// is on the HTTP status first; statuses the table does not name fall through
// to a generic error.
func Classify(err error) Feedback {
	if adminclient.IsTransport(err) {
		return Feedback{
			Severity:  SeverityWarning,
			Message:   "Could not reach the server. Check your connection and try again.",
			Retryable: true,
		}
	}

	switch status := adminclient.StatusOf(err); {
	case status == http.StatusBadRequest:
		return Feedback{
			Severity: SeverityError,
			Message:  "The request was rejected as invalid. Refresh the search and try again.",
		}
	case status == http.StatusUnauthorized:
		return Feedback{
			Severity: SeverityWarning,
			Message:  "Your session has expired. Log in again.",
		}
	case status == http.StatusForbidden:
		return Feedback{
			Severity: SeverityError,
			Message:  "You do not have permission to perform this action.",
		}
	case status == http.StatusNotFound:
		return Feedback{
			Severity: SeverityError,
			Message:  "This search was not found or has expired. Run the search again.",
		}
	case status == http.StatusConflict:
		return Feedback{
			Severity: SeverityError,
			Message:  "A person has already been selected for this check. Refresh to see the result.",
		}
	case status == http.StatusUnprocessableEntity:
		return Feedback{
			Severity: SeverityError,
			Message:  "This person's record cannot be used. Try a different person.",
		}
	case status == http.StatusTooManyRequests:
		return Feedback{
			Severity:  SeverityWarning,
			Message:   "Too many requests. Wait a moment and try again.",
			Retryable: true,
		}
	case status >= 500:
		return Feedback{
			Severity:  SeverityError,
			Message:   "The server encountered an error. Try again shortly.",
			Retryable: true,
		}
	default:
		return Feedback{
			Severity: SeverityError,
			Message:  "Something went wrong. Try again.",
		}
	}
}

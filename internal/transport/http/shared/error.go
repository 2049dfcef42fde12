package shared

import (
	"errors"
	"net/http"

	"amoria/internal/transport/http/shared/json"
	dErrors "amoria/pkg/domain-errors"
)

// WriteError centralizes domain error translation to HTTP responses.
// It translates transport-agnostic domain errors into HTTP status codes and
// the uniform response envelope. The stable code travels with the response so
// clients can pattern-match by code instead of parsing message text.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		status := DomainCodeToHTTPStatus(domainErr.Code)
		json.WriteFailure(w, status, string(domainErr.Code), domainErr.Message)
		return
	}

	// Fallback for unexpected errors
	json.WriteFailure(w, http.StatusInternalServerError, string(dErrors.CodeInternal), "")
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvalidInput, dErrors.CodeInvalidPlanName:
		return http.StatusBadRequest
	case dErrors.CodeConflict, dErrors.CodeAlreadySelected, dErrors.CodeAlreadyPaid, dErrors.CodeAlreadyHasPlan:
		return http.StatusConflict
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeNotPurchased:
		return http.StatusUnprocessableEntity
	case dErrors.CodeFeatureDisabled:
		return http.StatusNotImplemented
	case dErrors.CodeUpstreamUnavailable:
		return http.StatusServiceUnavailable
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeInternal, dErrors.CodeInvariantViolation:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

package dto

import "net/http"

// Error codes surfaced by the API. Most originate in the domain layer;
// the transport-only codes (UNAUTHORIZED, VALIDATION_ERROR, INTERNAL_ERROR)
// are produced here.
const (
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeAlreadyExists        = "ALREADY_EXISTS"
	ErrCodeInvalidInput         = "INVALID_INPUT"
	ErrCodeInvalidEmail         = "INVALID_EMAIL"
	ErrCodeInvalidSKU           = "INVALID_SKU"
	ErrCodeInvalidPolicyNumber  = "INVALID_POLICY_NUMBER"
	ErrCodeConcurrencyConflict  = "CONCURRENCY_CONFLICT"
	ErrCodeInvalidState         = "INVALID_STATE"
	ErrCodeInsufficientStock    = "INSUFFICIENT_STOCK"
	ErrCodeReferentialIntegrity = "REFERENTIAL_INTEGRITY"
	ErrCodeUnauthorized         = "UNAUTHORIZED"
	ErrCodeValidationError      = "VALIDATION_ERROR"
	ErrCodeInternalError        = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable   = "SERVICE_UNAVAILABLE"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeNotFound:             http.StatusNotFound,
	ErrCodeAlreadyExists:        http.StatusConflict,
	ErrCodeInvalidInput:         http.StatusBadRequest,
	ErrCodeInvalidEmail:         http.StatusBadRequest,
	ErrCodeInvalidSKU:           http.StatusBadRequest,
	ErrCodeInvalidPolicyNumber:  http.StatusBadRequest,
	ErrCodeConcurrencyConflict:  http.StatusConflict,
	ErrCodeInvalidState:         http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock:    http.StatusUnprocessableEntity,
	ErrCodeReferentialIntegrity: http.StatusConflict,
	ErrCodeUnauthorized:         http.StatusUnauthorized,
	ErrCodeValidationError:      http.StatusBadRequest,
	ErrCodeInternalError:        http.StatusInternalServerError,
	ErrCodeServiceUnavailable:   http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code,
// defaulting to 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

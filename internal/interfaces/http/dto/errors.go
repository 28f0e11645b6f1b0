package dto

import "net/http"

// Canonical API error codes
const (
	ErrCodeValidation    = "ERR_VALIDATION"
	ErrCodeInvalidInput  = "ERR_INVALID_INPUT"
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeUnauthorized  = "ERR_UNAUTHORIZED"
	ErrCodeForbidden     = "ERR_FORBIDDEN"
	ErrCodeInvalidState  = "ERR_INVALID_STATE"
	ErrCodeRateLimited   = "ERR_RATE_LIMITED"
	ErrCodeInternal      = "ERR_INTERNAL"
	ErrCodeUnavailable   = "ERR_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps canonical error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeUnauthorized:  http.StatusUnauthorized,
	ErrCodeForbidden:     http.StatusForbidden,
	ErrCodeInvalidState:  http.StatusConflict,
	ErrCodeRateLimited:   http.StatusTooManyRequests,
	ErrCodeInternal:      http.StatusInternalServerError,
	ErrCodeUnavailable:   http.StatusServiceUnavailable,
}

// LegacyErrorCodeMapping maps older or domain error codes to canonical codes
var LegacyErrorCodeMapping = map[string]string{
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_EMAIL":        ErrCodeValidation,
	"INVALID_NAME":         ErrCodeValidation,
	"INVALID_PASSWORD":     ErrCodeValidation,
	"INVALID_PHONE":        ErrCodeValidation,
	"INVALID_COMPANY_NAME": ErrCodeValidation,
	"INVALID_TAX_CODE":     ErrCodeValidation,
	"PASSWORD_HASH_ERROR":  ErrCodeInternal,
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"INVALID_STATE":        ErrCodeInvalidState,
	"INVALID_CREDENTIALS":  ErrCodeUnauthorized,
	"TOKEN_EXPIRED":        ErrCodeUnauthorized,
	"TOKEN_REVOKED":        ErrCodeUnauthorized,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"INTERNAL_ERROR":       ErrCodeInternal,
}

// NormalizeErrorCode maps legacy codes to their canonical form.
// Unknown codes pass through unchanged.
func NormalizeErrorCode(code string) string {
	if canonical, ok := LegacyErrorCodeMapping[code]; ok {
		return canonical
	}
	return code
}

// GetHTTPStatus returns the HTTP status for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[NormalizeErrorCode(code)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

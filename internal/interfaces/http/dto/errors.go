package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeDependency is used when an upstream dependency fails
	ErrCodeDependency = "ERR_DEPENDENCY"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	// ErrCodeInvalidState is used when an operation is invalid for the
	// current state, such as approving an already-approved photo
	ErrCodeInvalidState = "ERR_INVALID_STATE"
)

// Business rule error codes
const (
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeInsufficientBalance is used when wallet balance is insufficient
	ErrCodeInsufficientBalance = "ERR_INSUFFICIENT_BALANCE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:    http.StatusInternalServerError,
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeDependency: http.StatusBadGateway,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeInvalidState:        http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeBusinessRule:        http.StatusUnprocessableEntity,
	ErrCodeInsufficientBalance: http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to standardized API codes
var DomainErrorCodeMapping = map[string]string{
	// Not found
	"NOT_FOUND":       ErrCodeNotFound,
	"PHOTO_NOT_FOUND": ErrCodeNotFound,
	"USER_NOT_FOUND":  ErrCodeNotFound,
	"PLACE_NOT_FOUND": ErrCodeNotFound,
	"NO_PHOTOS_FOUND": ErrCodeNotFound,

	// State machine and locking conflicts
	"NOT_ACTIONABLE":       ErrCodeInvalidState,
	"INVALID_STATE":        ErrCodeInvalidState,
	"ALREADY_APPROVED":     ErrCodeInvalidState,
	"ALREADY_REJECTED":     ErrCodeInvalidState,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,

	// Auth
	"UNAUTHORIZED": ErrCodeUnauthorized,
	"FORBIDDEN":    ErrCodeForbidden,

	// Wallet
	"INSUFFICIENT_BALANCE": ErrCodeInsufficientBalance,

	// Upstream dependencies
	"MEDIA_STORE_FAILURE": ErrCodeDependency,
	"ALBUM_LIST_FAILURE":  ErrCodeDependency,
	"DEPENDENCY_FAILURE":  ErrCodeDependency,

	// Input validation
	"INVALID_OWNER":      ErrCodeValidation,
	"INVALID_USER":       ErrCodeValidation,
	"INVALID_EMAIL":      ErrCodeValidation,
	"INVALID_SOURCE":     ErrCodeValidation,
	"INVALID_ASSET":      ErrCodeValidation,
	"INVALID_AMOUNT":     ErrCodeValidation,
	"INVALID_REASON":     ErrCodeValidation,
	"INVALID_NAME":       ErrCodeValidation,
	"INVALID_PLACE_NAME": ErrCodeValidation,
	"INVALID_RADIUS":     ErrCodeValidation,
	"INVALID_FILE_NAME":  ErrCodeValidation,
	"INVALID_FONT_SIZE":  ErrCodeValidation,
	"INVALID_COLOR":      ErrCodeValidation,
	"INVALID_OPACITY":    ErrCodeValidation,
	"INVALID_POSITION":   ErrCodeValidation,
	"INVALID_SHARE_LINK": ErrCodeValidation,
	"EMPTY_FILE":         ErrCodeValidation,
	"MISSING_DEDUP_KEY":  ErrCodeValidation,
	"INVALID_DEDUP_KEY":  ErrCodeValidation,
	"NOT_AN_IMAGE":       ErrCodeValidation,
	"INVALID_INPUT":      ErrCodeInvalidInput,
	"BAD_REQUEST":        ErrCodeBadRequest,

	"INTERNAL_ERROR": ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}

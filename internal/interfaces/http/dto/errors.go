// Package dto holds the JSON envelope and error codes of the HTTP API.
package dto

import (
	"net/http"

	"github.com/propman/backend/internal/domain/shared"
)

// Error codes returned in the "error.code" field
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeInvalidState     = "INVALID_STATE"
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeAlreadyExists    = "ALREADY_EXISTS"
	ErrCodeDuplicateRequest = "DUPLICATE_REQUEST"
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	ErrCodeUnavailable      = "SERVICE_UNAVAILABLE"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeInvalidJSON:      http.StatusBadRequest,
	ErrCodeInvalidInput:     http.StatusBadRequest,
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeAlreadyExists:    http.StatusConflict,
	ErrCodeDuplicateRequest: http.StatusConflict,
	ErrCodeRequestTooLarge:  http.StatusRequestEntityTooLarge,
	ErrCodeInvalidState:     http.StatusUnprocessableEntity,
	ErrCodeUnavailable:      http.StatusServiceUnavailable,
	ErrCodeInternal:         http.StatusInternalServerError,
}

// domainCodes translates domain error codes to API error codes
var domainCodes = map[string]string{
	shared.CodeValidationFailed: ErrCodeValidation,
	shared.CodeNotFound:         ErrCodeNotFound,
	shared.CodeInvalidState:     ErrCodeInvalidState,
	shared.CodeInvalidInput:     ErrCodeInvalidInput,
	shared.CodeAlreadyExists:    ErrCodeAlreadyExists,
	shared.CodeDuplicateRequest: ErrCodeDuplicateRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// FromDomainCode converts a domain error code to an API error code.
// Unknown business rule codes are reported as INVALID_STATE (422).
func FromDomainCode(code string) string {
	if apiCode, ok := domainCodes[code]; ok {
		return apiCode
	}
	return ErrCodeInvalidState
}

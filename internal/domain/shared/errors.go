package shared

import (
	"fmt"
	"sort"
	"strings"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so sentinel
// errors match instances with a more specific message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes
const (
	CodeNotFound         = "NOT_FOUND"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInvalidState     = "INVALID_STATE"
	CodeAlreadyExists    = "ALREADY_EXISTS"
	CodeDuplicateRequest = "DUPLICATE_REQUEST"
)

// Common domain errors
var (
	ErrNotFound         = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists    = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput     = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrInvalidState     = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrDuplicateRequest = NewDomainError(CodeDuplicateRequest, "Request has already been processed")
)

// NotFound builds the error raised when an entity referenced by id does not exist.
func NotFound(kind string, id fmt.Stringer) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s with id %s was not found", kind, id))
}

// ValidationError carries every field-level rule violation of a request.
type ValidationError struct {
	DomainError
	Fields map[string][]string `json:"errors"`
}

// NewValidationError creates a validation error from a field → messages map.
func NewValidationError(fields map[string][]string) *ValidationError {
	return &ValidationError{
		DomainError: DomainError{
			Code:    CodeValidationFailed,
			Message: "One or more validation errors occurred",
		},
		Fields: fields,
	}
}

// NewFieldError is a shortcut for a validation error on a single field.
func NewFieldError(field, message string) *ValidationError {
	return NewValidationError(map[string][]string{field: {message}})
}

// Error lists the failing fields in a stable order.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e.Fields[f], "; "))
	}
	return e.Message + ": " + strings.Join(parts, ", ")
}

// Is matches other validation errors and the CodeValidationFailed domain code.
func (e *ValidationError) Is(target error) bool {
	switch t := target.(type) {
	case *ValidationError:
		return true
	case *DomainError:
		return t.Code == CodeValidationFailed
	}
	return false
}

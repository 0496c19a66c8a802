package dto

import (
	"sort"

	"github.com/propman/backend/internal/domain/shared"
)

// Response is the envelope of every JSON response
type Response struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Error   *ErrorInfo          `json:"error,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Meta    *Meta               `json:"meta,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail is a single field failure
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Meta represents pagination metadata
type Meta struct {
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	TotalPages  int   `json:"total_pages"`
	HasPrevious bool  `json:"has_previous"`
	HasNext     bool  `json:"has_next"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewPagedResponse puts the items of a page in data and its counters in meta
func NewPagedResponse[T any](page shared.PagedList[T]) Response {
	return Response{
		Success: true,
		Data:    page.Items,
		Meta: &Meta{
			Total:       page.TotalCount,
			Page:        page.PageNumber,
			PageSize:    page.PageSize,
			TotalPages:  page.TotalPages(),
			HasPrevious: page.HasPreviousPage(),
			HasNext:     page.HasNextPage(),
		},
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message, requestID string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
	}
}

// NewValidationErrorResponse reports every failing field, both as a flat
// detail list and as a field → messages map.
func NewValidationErrorResponse(message, requestID string, fields map[string][]string) Response {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	details := make([]ValidationDetail, 0, len(fields))
	for _, name := range names {
		for _, msg := range fields[name] {
			details = append(details, ValidationDetail{Field: name, Message: msg})
		}
	}

	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      ErrCodeValidation,
			Message:   message,
			RequestID: requestID,
			Details:   details,
		},
		Errors: fields,
	}
}

// IDRequest binds an :id path parameter
type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// AttachmentIDRequest binds the path of a single expense attachment
type AttachmentIDRequest struct {
	ID           string `uri:"id" binding:"required,uuid"`
	AttachmentID string `uri:"attachmentId" binding:"required,uuid"`
}

// Package handler implements the HTTP endpoints of the rental management API.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/logger"
	"github.com/propman/backend/internal/interfaces/http/dto"
	"github.com/propman/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

const validationMessage = "One or more validation errors occurred"

// BaseHandler provides common handler utilities
type BaseHandler struct {
	// ShowErrorDetail exposes the message of unexpected errors to clients.
	// Development only.
	ShowErrorDetail bool
}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with an explicit status
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, code, message string) {
	h.Error(c, http.StatusBadRequest, code, message)
}

// ValidationFailed sends a 400 response listing every failing field
func (h *BaseHandler) ValidationFailed(c *gin.Context, fields map[string][]string) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(validationMessage, middleware.GetRequestID(c), fields))
}

// HandleError converts an application error into a response. Validation
// failures become 400, not-found 404, other domain errors their mapped
// status, and anything else 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var validationErr *shared.ValidationError
	if errors.As(err, &validationErr) {
		h.ValidationFailed(c, validationErr.Fields)
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.FromDomainCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	logger.L(c.Request.Context()).Error("Unhandled error", zap.Error(err))
	message := "An unexpected error occurred"
	if h.ShowErrorDetail {
		message = err.Error()
	}
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// BindJSON decodes the request body into dst. On failure it writes the
// response and returns false.
func (h *BaseHandler) BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.bindFailed(c, err)
		return false
	}
	return true
}

// PathID parses the :id path parameter. On failure it writes the response
// and returns false.
func (h *BaseHandler) PathID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.bindFailed(c, err)
		return uuid.Nil, false
	}
	return uuid.MustParse(req.ID), true
}

func (h *BaseHandler) bindFailed(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
		return
	}
	if fields, ok := middleware.BindingFields(err); ok {
		h.ValidationFailed(c, fields)
		return
	}
	h.BadRequest(c, dto.ErrCodeInvalidJSON, "Request body is not valid JSON: "+err.Error())
}

package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/logger"
	"github.com/propman/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader is the optional header that de-duplicates POST commands
const IdempotencyKeyHeader = "Idempotency-Key"

// MaxIdempotencyKeyLength bounds the header value
const MaxIdempotencyKeyLength = 255

// Idempotency rejects a POST whose Idempotency-Key was already claimed
// within ttl. The key is claimed before the handler runs, so concurrent
// duplicates see one winner, and released again when the request fails.
// Requests without the header pass through, and a store failure is logged
// and does not block the request.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" {
			c.Next()
			return
		}
		if len(key) > MaxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
				"One or more validation errors occurred",
				GetRequestID(c),
				map[string][]string{IdempotencyKeyHeader: {"Idempotency-Key must not exceed 255 characters"}},
			))
			return
		}

		scoped := c.FullPath() + "|" + key
		ctx := c.Request.Context()
		claimed, err := store.MarkProcessed(ctx, scoped, ttl)
		if err != nil {
			logger.L(ctx).Warn("Idempotency store unavailable, accepting request",
				zap.String("idempotency_key", key),
				zap.Error(err),
			)
			c.Next()
			return
		}
		if !claimed {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponse(
				dto.ErrCodeDuplicateRequest,
				shared.ErrDuplicateRequest.Message,
				GetRequestID(c),
			))
			return
		}

		c.Next()

		// Only accepted commands consume the key; a rejected request may be retried.
		if c.Writer.Status() >= http.StatusBadRequest {
			if err := store.Release(context.WithoutCancel(ctx), scoped); err != nil {
				logger.L(ctx).Warn("Failed to release idempotency key",
					zap.String("idempotency_key", key),
					zap.Error(err),
				)
			}
		}
	}
}

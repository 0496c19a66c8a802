// Package cache holds the idempotency key stores used by the HTTP layer.
package cache

import (
	"context"
	"time"

	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Store is an idempotency store whose backend can be health-checked
type Store interface {
	shared.IdempotencyStore
	Ping(ctx context.Context) error
}

// NewIdempotencyStore returns a Redis store when cfg.URL is set and an
// in-memory store otherwise. An unreachable Redis falls back to memory
// with a warning, since duplicate detection is best-effort.
func NewIdempotencyStore(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) Store {
	if cfg.URL == "" {
		logger.Info("Using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(5 * time.Minute)
	}

	store, err := NewRedisIdempotencyStore(ctx, cfg.URL)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory idempotency store", zap.Error(err))
		return NewInMemoryIdempotencyStore(5 * time.Minute)
	}
	logger.Info("Using Redis idempotency store")
	return store
}

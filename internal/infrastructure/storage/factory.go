package storage

import (
	"context"
	"fmt"

	"github.com/propman/backend/internal/application/expense"
	"github.com/propman/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New builds the attachment store selected by cfg.Attachments.Driver.
// The s3 driver makes sure its bucket exists.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (expense.ObjectStorage, error) {
	switch cfg.Attachments.Driver {
	case "local":
		logger.Info("Using local attachment storage", zap.String("path", cfg.Attachments.BasePath))
		return NewLocalObjectStorage(cfg.Attachments.BasePath)
	case "s3":
		s, err := NewS3ObjectStorage(ctx, &cfg.Storage, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		logger.Info("Using S3 attachment storage", zap.String("bucket", s.Bucket()))
		return s, nil
	default:
		return nil, fmt.Errorf("unknown attachment storage driver %q", cfg.Attachments.Driver)
	}
}

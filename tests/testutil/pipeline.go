package testutil

import (
	"context"

	"github.com/propman/backend/internal/application/pipeline"
	"github.com/propman/backend/internal/application/validation"
	"github.com/propman/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TestTransactor counts transactions instead of opening them.
type TestTransactor struct {
	Begun      int
	Committed  int
	RolledBack int
}

// WithinTransaction implements pipeline.Transactor
func (t *TestTransactor) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	t.Begun++
	if err := fn(ctx); err != nil {
		t.RolledBack++
		return err
	}
	t.Committed++
	return nil
}

// NewPipeline builds the standard pipeline over a TestTransactor and the
// given registry.
func NewPipeline(registry *validation.Registry) (*pipeline.Pipeline, *TestTransactor) {
	tx := &TestTransactor{}
	return pipeline.Standard(registry, tx, pipeline.StaticLogger(zap.NewNop()), nil, FixedClock()), tx
}

// FixedClock returns a clock stopped at FixedNow.
func FixedClock() shared.Clock {
	return shared.FixedClock(FixedNow)
}

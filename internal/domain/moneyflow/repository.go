package moneyflow

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MoneyFlowRepository defines the interface for money flow persistence
type MoneyFlowRepository interface {
	// FindByID returns shared.ErrNotFound when no money flow has the id
	FindByID(ctx context.Context, id uuid.UUID) (*MoneyFlow, error)

	// List returns one page ordered by date then creation time, newest first, and the total match count
	List(ctx context.Context, filter Filter) ([]MoneyFlow, int64, error)

	// FindForProperty returns every flow of a property dated within [from, to]
	FindForProperty(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]MoneyFlow, error)

	Save(ctx context.Context, flow *MoneyFlow) error
	Delete(ctx context.Context, id uuid.UUID) error
}

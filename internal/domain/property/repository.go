package property

import (
	"context"

	"github.com/google/uuid"
)

// EntityName names properties in not-found errors
const EntityName = "Property"

// PropertyRepository defines the interface for property persistence
type PropertyRepository interface {
	// FindByID returns shared.ErrNotFound when no property has the id
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)

	// Exists checks whether a property with the id exists
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// FindNames returns the names of the given properties keyed by id; unknown ids are absent
	FindNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)

	// List returns one page of properties ordered by name and the total match count
	List(ctx context.Context, filter Filter) ([]Property, int64, error)

	// Save creates or updates a property
	Save(ctx context.Context, property *Property) error
}

package tenancy

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entity names used in not-found errors
const (
	TenantEntityName = "Tenant"
	LeaseEntityName  = "Lease"
)

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	// FindByID returns shared.ErrNotFound when no tenant has the id
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)

	// FindByIDs returns tenants keyed by id; unknown ids are absent
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Tenant, error)

	// List returns one page ordered by last name, first name and the total match count
	List(ctx context.Context, filter TenantFilter) ([]Tenant, int64, error)

	Save(ctx context.Context, tenant *Tenant) error
}

// LeaseRepository defines the interface for lease persistence
type LeaseRepository interface {
	// FindByID returns shared.ErrNotFound when no lease has the id
	FindByID(ctx context.Context, id uuid.UUID) (*Lease, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// List returns one page ordered by start date descending and the total match count
	List(ctx context.Context, filter LeaseFilter) ([]Lease, int64, error)

	// ListEnded returns active leases whose end date is before asOf
	ListEnded(ctx context.Context, asOf time.Time) ([]Lease, error)

	Save(ctx context.Context, lease *Lease) error
}

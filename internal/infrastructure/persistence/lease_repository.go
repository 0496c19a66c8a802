package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/tenancy"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLeaseRepository implements LeaseRepository using GORM
type GormLeaseRepository struct {
	db *gorm.DB
}

// NewGormLeaseRepository creates a new GormLeaseRepository
func NewGormLeaseRepository(db *gorm.DB) *GormLeaseRepository {
	return &GormLeaseRepository{db: db}
}

// FindByID finds a lease by its ID
func (r *GormLeaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Lease, error) {
	var model models.LeaseModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError("find lease", err)
	}
	return model.ToDomain(), nil
}

// Exists checks whether a lease with the ID exists
func (r *GormLeaseRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(conn(ctx, r.db), "leases", id)
}

// List returns one page ordered by start date descending and the total match count
func (r *GormLeaseRepository) List(ctx context.Context, filter tenancy.LeaseFilter) ([]tenancy.Lease, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count leases: %w", err)
	}

	var rows []models.LeaseModel
	if err := r.filtered(ctx, filter).
		Order("start_date DESC, id ASC").
		Scopes(paginate(filter.PageRequest)).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list leases: %w", err)
	}

	out := make([]tenancy.Lease, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// ListEnded returns active leases whose end date is before asOf, oldest first
func (r *GormLeaseRepository) ListEnded(ctx context.Context, asOf time.Time) ([]tenancy.Lease, error) {
	var rows []models.LeaseModel
	if err := conn(ctx, r.db).
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", int(tenancy.LeaseStatusActive), asOf).
		Order("end_date ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list ended leases: %w", err)
	}

	out := make([]tenancy.Lease, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates a lease
func (r *GormLeaseRepository) Save(ctx context.Context, l *tenancy.Lease) error {
	if err := conn(ctx, r.db).Save(models.LeaseModelFromDomain(l)).Error; err != nil {
		return fmt.Errorf("save lease: %w", err)
	}
	return nil
}

func (r *GormLeaseRepository) filtered(ctx context.Context, filter tenancy.LeaseFilter) *gorm.DB {
	query := conn(ctx, r.db).Model(&models.LeaseModel{})
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}

var _ tenancy.LeaseRepository = (*GormLeaseRepository)(nil)

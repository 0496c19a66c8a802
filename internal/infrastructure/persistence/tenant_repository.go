package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/tenancy"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTenantRepository implements TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a tenant by its ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	var model models.TenantModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError("find tenant", err)
	}
	return model.ToDomain(), nil
}

// Exists checks whether a tenant with the ID exists
func (r *GormTenantRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(conn(ctx, r.db), "tenants", id)
}

// ExistsByEmail checks whether another tenant already uses the email.
// Emails are stored lowercased so the comparison is case-insensitive.
func (r *GormTenantRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	query := conn(ctx, r.db).Model(&models.TenantModel{}).Where("email = ?", tenancy.NormalizeEmail(email))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check tenant email: %w", err)
	}
	return count > 0, nil
}

// FindByIDs returns tenants keyed by ID
func (r *GormTenantRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]tenancy.Tenant, error) {
	ids = uniqueIDs(ids)
	out := make(map[uuid.UUID]tenancy.Tenant, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.TenantModel
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find tenants: %w", err)
	}
	for i := range rows {
		out[rows[i].ID] = *rows[i].ToDomain()
	}
	return out, nil
}

// List returns one page ordered by last name, first name and the total match count
func (r *GormTenantRepository) List(ctx context.Context, filter tenancy.TenantFilter) ([]tenancy.Tenant, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count tenants: %w", err)
	}

	var rows []models.TenantModel
	if err := r.filtered(ctx, filter).
		Order("last_name ASC, first_name ASC, id ASC").
		Scopes(paginate(filter.PageRequest)).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list tenants: %w", err)
	}

	out := make([]tenancy.Tenant, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a tenant
func (r *GormTenantRepository) Save(ctx context.Context, t *tenancy.Tenant) error {
	if err := conn(ctx, r.db).Save(models.TenantModelFromDomain(t)).Error; err != nil {
		return fmt.Errorf("save tenant: %w", err)
	}
	return nil
}

func (r *GormTenantRepository) filtered(ctx context.Context, filter tenancy.TenantFilter) *gorm.DB {
	query := conn(ctx, r.db).Model(&models.TenantModel{})
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}
	return query
}

var _ tenancy.TenantRepository = (*GormTenantRepository)(nil)

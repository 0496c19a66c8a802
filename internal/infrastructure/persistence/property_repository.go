package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/property"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPropertyRepository implements PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByID finds a property by its ID
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	var model models.PropertyModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError("find property", err)
	}
	return model.ToDomain(), nil
}

// Exists checks whether a property with the ID exists
func (r *GormPropertyRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(conn(ctx, r.db), "properties", id)
}

// FindNames returns property names keyed by ID
func (r *GormPropertyRepository) FindNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	return findNames(conn(ctx, r.db), "properties", "name", ids)
}

// List returns one page of properties ordered by name and the total match count
func (r *GormPropertyRepository) List(ctx context.Context, filter property.Filter) ([]property.Property, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	var rows []models.PropertyModel
	if err := r.filtered(ctx, filter).
		Order("name ASC, id ASC").
		Scopes(paginate(filter.PageRequest)).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}

	out := make([]property.Property, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a property
func (r *GormPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	if err := conn(ctx, r.db).Save(models.PropertyModelFromDomain(p)).Error; err != nil {
		return fmt.Errorf("save property: %w", err)
	}
	return nil
}

func (r *GormPropertyRepository) filtered(ctx context.Context, filter property.Filter) *gorm.DB {
	query := conn(ctx, r.db).Model(&models.PropertyModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("property_type = ?", *filter.Type)
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where("name ILIKE ? OR city ILIKE ? OR postcode ILIKE ?", pattern, pattern, pattern)
	}
	return query
}

var _ property.PropertyRepository = (*GormPropertyRepository)(nil)

package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/moneyflow"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMoneyFlowRepository implements MoneyFlowRepository using GORM
type GormMoneyFlowRepository struct {
	db *gorm.DB
}

// NewGormMoneyFlowRepository creates a new GormMoneyFlowRepository
func NewGormMoneyFlowRepository(db *gorm.DB) *GormMoneyFlowRepository {
	return &GormMoneyFlowRepository{db: db}
}

// FindByID finds a money flow by its ID
func (r *GormMoneyFlowRepository) FindByID(ctx context.Context, id uuid.UUID) (*moneyflow.MoneyFlow, error) {
	var model models.MoneyFlowModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError("find money flow", err)
	}
	return model.ToDomain(), nil
}

// List returns one page, newest first, and the total match count
func (r *GormMoneyFlowRepository) List(ctx context.Context, filter moneyflow.Filter) ([]moneyflow.MoneyFlow, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count money flows: %w", err)
	}

	var rows []models.MoneyFlowModel
	if err := r.filtered(ctx, filter).
		Order("flow_date DESC, created_at DESC, id ASC").
		Scopes(paginate(filter.PageRequest)).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list money flows: %w", err)
	}
	return toMoneyFlows(rows), total, nil
}

// FindForProperty returns every flow of a property dated within [from, to].
// Both bounds are whole days.
func (r *GormMoneyFlowRepository) FindForProperty(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]moneyflow.MoneyFlow, error) {
	var rows []models.MoneyFlowModel
	if err := conn(ctx, r.db).
		Where("property_id = ? AND flow_date >= ? AND flow_date <= ?", propertyID, shared.Today(from), shared.Today(to)).
		Order("flow_date ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find property money flows: %w", err)
	}
	return toMoneyFlows(rows), nil
}

// Save creates or updates a money flow
func (r *GormMoneyFlowRepository) Save(ctx context.Context, f *moneyflow.MoneyFlow) error {
	if err := conn(ctx, r.db).Save(models.MoneyFlowModelFromDomain(f)).Error; err != nil {
		return fmt.Errorf("save money flow: %w", err)
	}
	return nil
}

// Delete removes a money flow
func (r *GormMoneyFlowRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.MoneyFlowModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete money flow: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormMoneyFlowRepository) filtered(ctx context.Context, filter moneyflow.Filter) *gorm.DB {
	query := conn(ctx, r.db).Model(&models.MoneyFlowModel{})
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.Type != nil {
		query = query.Where("flow_type = ?", *filter.Type)
	}
	if filter.DateFrom != nil {
		query = query.Where("flow_date >= ?", shared.Today(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		query = query.Where("flow_date <= ?", shared.Today(*filter.DateTo))
	}
	if filter.ExpenseCategoryID != nil {
		query = query.Where("expense_category_id = ?", *filter.ExpenseCategoryID)
	}
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where("description ILIKE ? OR reference ILIKE ?", pattern, pattern)
	}
	return query
}

func toMoneyFlows(rows []models.MoneyFlowModel) []moneyflow.MoneyFlow {
	out := make([]moneyflow.MoneyFlow, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ moneyflow.MoneyFlowRepository = (*GormMoneyFlowRepository)(nil)

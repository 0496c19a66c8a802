package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/expense"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormExpenseCategoryRepository implements expense.CategoryRepository using GORM
type GormExpenseCategoryRepository struct {
	db *gorm.DB
}

// NewGormExpenseCategoryRepository creates a new GormExpenseCategoryRepository
func NewGormExpenseCategoryRepository(db *gorm.DB) *GormExpenseCategoryRepository {
	return &GormExpenseCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormExpenseCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Category, error) {
	var model models.ExpenseCategoryModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError("find expense category", err)
	}
	return model.ToDomain(), nil
}

// Exists checks whether a category with the ID exists
func (r *GormExpenseCategoryRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(conn(ctx, r.db), "expense_categories", id)
}

// FindNames returns category names keyed by ID
func (r *GormExpenseCategoryRepository) FindNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	return findNames(conn(ctx, r.db), "expense_categories", "name", ids)
}

// List returns one page ordered by name and the total match count
func (r *GormExpenseCategoryRepository) List(ctx context.Context, filter expense.CategoryFilter) ([]expense.Category, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count expense categories: %w", err)
	}

	var rows []models.ExpenseCategoryModel
	if err := r.filtered(ctx, filter).
		Order("name ASC, id ASC").
		Scopes(paginate(filter.PageRequest)).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list expense categories: %w", err)
	}

	out := make([]expense.Category, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a category
func (r *GormExpenseCategoryRepository) Save(ctx context.Context, c *expense.Category) error {
	if err := conn(ctx, r.db).Save(models.ExpenseCategoryModelFromDomain(c)).Error; err != nil {
		return fmt.Errorf("save expense category: %w", err)
	}
	return nil
}

func (r *GormExpenseCategoryRepository) filtered(ctx context.Context, filter expense.CategoryFilter) *gorm.DB {
	query := conn(ctx, r.db).Model(&models.ExpenseCategoryModel{})
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	return query
}

var _ expense.CategoryRepository = (*GormExpenseCategoryRepository)(nil)

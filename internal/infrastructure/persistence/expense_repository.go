package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/expense"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	var model models.ExpenseModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError("find expense", err)
	}
	return model.ToDomain(), nil
}

// List returns one page ordered by date descending, description ascending and the total match count
func (r *GormExpenseRepository) List(ctx context.Context, filter expense.Filter) ([]expense.Expense, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}

	var rows []models.ExpenseModel
	if err := r.filtered(ctx, filter).
		Order("expense_date DESC, description ASC, id ASC").
		Scopes(paginate(filter.PageRequest)).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}

	out := make([]expense.Expense, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, e *expense.Expense) error {
	if err := conn(ctx, r.db).Save(models.ExpenseModelFromDomain(e)).Error; err != nil {
		return fmt.Errorf("save expense: %w", err)
	}
	return nil
}

// Delete removes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormExpenseRepository) filtered(ctx context.Context, filter expense.Filter) *gorm.DB {
	query := conn(ctx, r.db).Model(&models.ExpenseModel{})
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.FromDate != nil {
		query = query.Where("expense_date >= ?", shared.Today(*filter.FromDate))
	}
	if filter.ToDate != nil {
		query = query.Where("expense_date <= ?", shared.Today(*filter.ToDate))
	}
	return query
}

// GormExpenseAttachmentRepository implements AttachmentRepository using GORM
type GormExpenseAttachmentRepository struct {
	db *gorm.DB
}

// NewGormExpenseAttachmentRepository creates a new GormExpenseAttachmentRepository
func NewGormExpenseAttachmentRepository(db *gorm.DB) *GormExpenseAttachmentRepository {
	return &GormExpenseAttachmentRepository{db: db}
}

// FindByID finds an attachment by its ID
func (r *GormExpenseAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Attachment, error) {
	var model models.ExpenseAttachmentModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError("find expense attachment", err)
	}
	return model.ToDomain(), nil
}

// FindByExpense returns an expense's attachments, oldest first
func (r *GormExpenseAttachmentRepository) FindByExpense(ctx context.Context, expenseID uuid.UUID) ([]expense.Attachment, error) {
	var rows []models.ExpenseAttachmentModel
	if err := conn(ctx, r.db).
		Where("expense_id = ?", expenseID).
		Order("uploaded_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find expense attachments: %w", err)
	}
	out := make([]expense.Attachment, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates attachment metadata
func (r *GormExpenseAttachmentRepository) Save(ctx context.Context, a *expense.Attachment) error {
	if err := conn(ctx, r.db).Save(models.ExpenseAttachmentModelFromDomain(a)).Error; err != nil {
		return fmt.Errorf("save expense attachment: %w", err)
	}
	return nil
}

// Delete removes one attachment's metadata
func (r *GormExpenseAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.ExpenseAttachmentModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete expense attachment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByExpense removes all attachment metadata of an expense
func (r *GormExpenseAttachmentRepository) DeleteByExpense(ctx context.Context, expenseID uuid.UUID) error {
	if err := conn(ctx, r.db).Delete(&models.ExpenseAttachmentModel{}, "expense_id = ?", expenseID).Error; err != nil {
		return fmt.Errorf("delete expense attachments: %w", err)
	}
	return nil
}

var (
	_ expense.ExpenseRepository    = (*GormExpenseRepository)(nil)
	_ expense.AttachmentRepository = (*GormExpenseAttachmentRepository)(nil)
)

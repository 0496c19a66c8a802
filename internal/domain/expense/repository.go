package expense

import (
	"context"

	"github.com/google/uuid"
)

// Entity names used in not-found errors
const (
	ExpenseEntityName    = "Expense"
	CategoryEntityName   = "ExpenseCategory"
	AttachmentEntityName = "ExpenseAttachment"
)

// CategoryRepository defines the interface for expense category persistence
type CategoryRepository interface {
	// FindByID returns shared.ErrNotFound when no category has the id
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// FindNames returns category names keyed by id; unknown ids are absent
	FindNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)

	// List returns one page ordered by name and the total match count
	List(ctx context.Context, filter CategoryFilter) ([]Category, int64, error)

	Save(ctx context.Context, category *Category) error
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// FindByID returns shared.ErrNotFound when no expense has the id
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)

	// List returns one page ordered by date descending, description ascending and the total match count
	List(ctx context.Context, filter Filter) ([]Expense, int64, error)

	Save(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AttachmentRepository defines the interface for attachment metadata persistence
type AttachmentRepository interface {
	// FindByID returns shared.ErrNotFound when no attachment has the id
	FindByID(ctx context.Context, id uuid.UUID) (*Attachment, error)
	FindByExpense(ctx context.Context, expenseID uuid.UUID) ([]Attachment, error)
	Save(ctx context.Context, attachment *Attachment) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByExpense(ctx context.Context, expenseID uuid.UUID) error
}

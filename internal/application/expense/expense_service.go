package expense

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/application/pipeline"
	"github.com/propman/backend/internal/domain/expense"
	"github.com/propman/backend/internal/domain/property"
	"github.com/propman/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ExpenseService handles expense commands and queries
type ExpenseService struct {
	pipe        *pipeline.Pipeline
	expenses    expense.ExpenseRepository
	categories  expense.CategoryRepository
	properties  property.PropertyRepository
	attachments expense.AttachmentRepository
	storage     ObjectStorage
	clock       shared.Clock
	logger      pipeline.LoggerFunc
}

// ExpenseServiceDeps groups the collaborators of ExpenseService
type ExpenseServiceDeps struct {
	Expenses    expense.ExpenseRepository
	Categories  expense.CategoryRepository
	Properties  property.PropertyRepository
	Attachments expense.AttachmentRepository
	Storage     ObjectStorage
	Clock       shared.Clock
	Logger      pipeline.LoggerFunc
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(pipe *pipeline.Pipeline, deps ExpenseServiceDeps) *ExpenseService {
	logger := deps.Logger
	if logger == nil {
		logger = pipeline.StaticLogger(nil)
	}
	return &ExpenseService{
		pipe:        pipe,
		expenses:    deps.Expenses,
		categories:  deps.Categories,
		properties:  deps.Properties,
		attachments: deps.Attachments,
		storage:     deps.Storage,
		clock:       deps.Clock,
		logger:      logger,
	}
}

// Create records an expense
func (s *ExpenseService) Create(ctx context.Context, cmd CreateExpenseCommand) (*ExpenseResponse, error) {
	return pipeline.Send(ctx, s.pipe, cmd, s.create)
}

// Update replaces the details of an expense
func (s *ExpenseService) Update(ctx context.Context, cmd UpdateExpenseCommand) (*ExpenseResponse, error) {
	return pipeline.Send(ctx, s.pipe, cmd, s.update)
}

// Delete removes an expense. Stored attachment files are removed once the
// deletion has committed.
func (s *ExpenseService) Delete(ctx context.Context, cmd DeleteExpenseCommand) error {
	keys, err := pipeline.Send(ctx, s.pipe, cmd, s.delete)
	if err != nil {
		return err
	}
	s.removeObjects(ctx, keys...)
	return nil
}

// Get loads an expense by id
func (s *ExpenseService) Get(ctx context.Context, q GetExpenseQuery) (*ExpenseResponse, error) {
	return pipeline.Send(ctx, s.pipe, q, s.get)
}

// List pages through expenses
func (s *ExpenseService) List(ctx context.Context, q ListExpensesQuery) (shared.PagedList[ExpenseListItem], error) {
	return pipeline.Send(ctx, s.pipe, q, s.list)
}

func (s *ExpenseService) create(ctx context.Context, cmd CreateExpenseCommand) (*ExpenseResponse, error) {
	exists, err := s.properties.Exists(ctx, cmd.PropertyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NotFound(property.EntityName, cmd.PropertyID)
	}
	category, err := s.findCategory(ctx, cmd.CategoryID)
	if err != nil {
		return nil, err
	}

	e, err := expense.NewExpense(cmd.PropertyID, cmd.details(), s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.expenses.Save(ctx, e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e, category.Name), nil
}

func (s *ExpenseService) update(ctx context.Context, cmd UpdateExpenseCommand) (*ExpenseResponse, error) {
	e, err := s.find(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	category, err := s.findCategory(ctx, cmd.CategoryID)
	if err != nil {
		return nil, err
	}

	updated, err := e.Update(cmd.details(), s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.expenses.Save(ctx, &updated); err != nil {
		return nil, err
	}
	return toExpenseResponse(&updated, category.Name), nil
}

// delete removes the expense rows and returns the storage keys left to clean up
func (s *ExpenseService) delete(ctx context.Context, cmd DeleteExpenseCommand) ([]string, error) {
	if _, err := s.find(ctx, cmd.ID); err != nil {
		return nil, err
	}
	attachments, err := s.attachments.FindByExpense(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if err := s.attachments.DeleteByExpense(ctx, cmd.ID); err != nil {
		return nil, err
	}
	if err := s.expenses.Delete(ctx, cmd.ID); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(attachments))
	for _, a := range attachments {
		keys = append(keys, a.StoragePath)
	}
	return keys, nil
}

func (s *ExpenseService) get(ctx context.Context, q GetExpenseQuery) (*ExpenseResponse, error) {
	e, err := s.find(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	names, err := s.categories.FindNames(ctx, []uuid.UUID{e.CategoryID})
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(e, categoryName(names, e.CategoryID)), nil
}

func (s *ExpenseService) list(ctx context.Context, q ListExpensesQuery) (shared.PagedList[ExpenseListItem], error) {
	items, total, err := s.expenses.List(ctx, expense.Filter{
		PageRequest: q.PageRequest,
		PropertyID:  q.PropertyID,
		CategoryID:  q.CategoryID,
		FromDate:    q.FromDate,
		ToDate:      q.ToDate,
	})
	if err != nil {
		return shared.PagedList[ExpenseListItem]{}, err
	}

	var names map[uuid.UUID]string
	if len(items) > 0 {
		ids := make([]uuid.UUID, 0, len(items))
		for _, e := range items {
			ids = append(ids, e.CategoryID)
		}
		if names, err = s.categories.FindNames(ctx, ids); err != nil {
			return shared.PagedList[ExpenseListItem]{}, err
		}
	}

	page := shared.NewPagedList(items, total, q.PageNumber, q.PageSize)
	return shared.MapPagedList(page, func(e expense.Expense) ExpenseListItem {
		return toExpenseListItem(e, categoryName(names, e.CategoryID))
	}), nil
}

func (s *ExpenseService) find(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	e, err := s.expenses.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NotFound(expense.ExpenseEntityName, id)
	}
	return e, err
}

func (s *ExpenseService) findCategory(ctx context.Context, id uuid.UUID) (*expense.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NotFound(expense.CategoryEntityName, id)
	}
	return c, err
}

// removeObjects deletes stored files. Failures leave orphaned objects and are only logged.
func (s *ExpenseService) removeObjects(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger(ctx).Warn("Failed to delete attachment object",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
}

func categoryName(names map[uuid.UUID]string, id uuid.UUID) string {
	if name, ok := names[id]; ok {
		return name
	}
	return unknownCategory
}

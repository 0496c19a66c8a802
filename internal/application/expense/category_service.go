package expense

import (
	"context"
	"errors"

	"github.com/propman/backend/internal/application/pipeline"
	"github.com/propman/backend/internal/domain/expense"
	"github.com/propman/backend/internal/domain/shared"
)

// CategoryService serves the expense category lookups
type CategoryService struct {
	pipe *pipeline.Pipeline
	repo expense.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(pipe *pipeline.Pipeline, repo expense.CategoryRepository) *CategoryService {
	return &CategoryService{pipe: pipe, repo: repo}
}

// Get loads a category by id
func (s *CategoryService) Get(ctx context.Context, q GetCategoryQuery) (*CategoryResponse, error) {
	return pipeline.Send(ctx, s.pipe, q, func(ctx context.Context, q GetCategoryQuery) (*CategoryResponse, error) {
		c, err := s.repo.FindByID(ctx, q.ID)
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound(expense.CategoryEntityName, q.ID)
		}
		if err != nil {
			return nil, err
		}
		resp := toCategoryResponse(*c)
		return &resp, nil
	})
}

// List pages through categories
func (s *CategoryService) List(ctx context.Context, q ListCategoriesQuery) (shared.PagedList[CategoryResponse], error) {
	return pipeline.Send(ctx, s.pipe, q, func(ctx context.Context, q ListCategoriesQuery) (shared.PagedList[CategoryResponse], error) {
		items, total, err := s.repo.List(ctx, expense.CategoryFilter{
			PageRequest: q.PageRequest,
			IsActive:    q.IsActive,
		})
		if err != nil {
			return shared.PagedList[CategoryResponse]{}, err
		}
		page := shared.NewPagedList(items, total, q.PageNumber, q.PageSize)
		return shared.MapPagedList(page, toCategoryResponse), nil
	})
}

package expense

import (
	"strings"
	"time"

	"github.com/propman/backend/internal/domain/shared"
)

// Category groups expenses for reporting (repairs, insurance, agent fees, ...)
type Category struct {
	shared.BaseEntity
	Name        string
	Code        string
	Description *string
	IsActive    bool
}

// NewCategory creates an active category. Code is stored uppercased.
func NewCategory(name, code string, description *string, now time.Time) (*Category, error) {
	name, code, err := normalizeCategory(name, code)
	if err != nil {
		return nil, err
	}
	return &Category{
		BaseEntity:  shared.NewBaseEntity(now),
		Name:        name,
		Code:        code,
		Description: description,
		IsActive:    true,
	}, nil
}

// Update returns a copy with a new name and description
func (c Category) Update(name string, description *string, now time.Time) (Category, error) {
	name, _, err := normalizeCategory(name, c.Code)
	if err != nil {
		return c, err
	}
	c.Name = name
	c.Description = description
	c.Touch(now)
	return c, nil
}

// Deactivate hides the category from new expenses
func (c Category) Deactivate(now time.Time) Category {
	c.IsActive = false
	c.Touch(now)
	return c
}

// Activate makes the category selectable again
func (c Category) Activate(now time.Time) Category {
	c.IsActive = true
	c.Touch(now)
	return c
}

func normalizeCategory(name, code string) (string, string, error) {
	name = strings.TrimSpace(name)
	code = strings.ToUpper(strings.TrimSpace(code))
	if name == "" {
		return name, code, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if code == "" {
		return name, code, shared.NewDomainError("INVALID_CODE", "Category code cannot be empty")
	}
	return name, code, nil
}

// CategoryFilter narrows a category list
type CategoryFilter struct {
	shared.PageRequest
	IsActive *bool
}

package expense

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Details holds the user-editable attributes of an expense
type Details struct {
	CategoryID  uuid.UUID
	Description string
	Amount      decimal.Decimal
	Currency    valueobject.Currency
	Date        time.Time
	Vendor      *string
	Reference   *string
	Notes       *string
}

// Expense is a cost incurred for a property
type Expense struct {
	shared.BaseEntity
	Details
	PropertyID uuid.UUID
}

// NewExpense creates an expense. Currency is stored uppercased.
func NewExpense(propertyID uuid.UUID, d Details, now time.Time) (*Expense, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Expense property is required")
	}
	d, err := normalizeExpense(d)
	if err != nil {
		return nil, err
	}
	return &Expense{
		BaseEntity: shared.NewBaseEntity(now),
		Details:    d,
		PropertyID: propertyID,
	}, nil
}

// Update returns a copy of the expense carrying the new details
func (e Expense) Update(d Details, now time.Time) (Expense, error) {
	d, err := normalizeExpense(d)
	if err != nil {
		return e, err
	}
	e.Details = d
	e.Touch(now)
	return e, nil
}

func normalizeExpense(d Details) (Details, error) {
	d.Description = strings.TrimSpace(d.Description)
	d.Currency = valueobject.NormalizeCurrency(string(d.Currency))
	d.Date = shared.Today(d.Date)
	if d.CategoryID == uuid.Nil {
		return d, shared.NewDomainError("INVALID_CATEGORY", "Expense category is required")
	}
	if d.Description == "" {
		return d, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if !d.Amount.IsPositive() {
		return d, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	return d, nil
}

// Filter narrows an expense list. Date bounds are inclusive.
type Filter struct {
	shared.PageRequest
	PropertyID *uuid.UUID
	CategoryID *uuid.UUID
	FromDate   *time.Time
	ToDate     *time.Time
}

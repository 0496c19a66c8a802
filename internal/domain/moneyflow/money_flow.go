package moneyflow

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// EntityName names money flows in not-found errors
const EntityName = "MoneyFlow"

// FlowType discriminates money coming in from money going out
type FlowType int

const (
	FlowTypeIncome  FlowType = 1
	FlowTypeExpense FlowType = 2
)

// IsValid checks if the type is Income or Expense
func (t FlowType) IsValid() bool {
	return t == FlowTypeIncome || t == FlowTypeExpense
}

// String returns the name of the FlowType
func (t FlowType) String() string {
	switch t {
	case FlowTypeIncome:
		return "Income"
	case FlowTypeExpense:
		return "Expense"
	default:
		return "Unknown"
	}
}

// Details holds every field of a money flow that can change after creation
type Details struct {
	Amount            decimal.Decimal
	Currency          valueobject.Currency
	Date              time.Time
	Description       string
	ExpenseCategoryID *uuid.UUID
	IncomeSource      *string
	TenantID          *uuid.UUID
	LeaseID           *uuid.UUID
	Reference         *string
	Notes             *string
}

// MoneyFlow is a single income or expense movement for a property
type MoneyFlow struct {
	shared.BaseEntity
	Details
	PropertyID uuid.UUID
	Type       FlowType
}

// NewMoneyFlow creates a money flow
func NewMoneyFlow(propertyID uuid.UUID, flowType FlowType, d Details, now time.Time) (*MoneyFlow, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Money flow property is required")
	}
	if !flowType.IsValid() {
		return nil, shared.NewDomainError("INVALID_FLOW_TYPE", "Money flow type must be Income or Expense")
	}
	d, err := normalizeFlow(d)
	if err != nil {
		return nil, err
	}
	return &MoneyFlow{
		BaseEntity: shared.NewBaseEntity(now),
		Details:    d,
		PropertyID: propertyID,
		Type:       flowType,
	}, nil
}

// Update returns a copy carrying the new details. Property and type never change.
func (m MoneyFlow) Update(d Details, now time.Time) (MoneyFlow, error) {
	d, err := normalizeFlow(d)
	if err != nil {
		return m, err
	}
	m.Details = d
	m.Touch(now)
	return m, nil
}

// IsIncome reports whether the flow is income
func (m MoneyFlow) IsIncome() bool {
	return m.Type == FlowTypeIncome
}

func normalizeFlow(d Details) (Details, error) {
	d.Description = strings.TrimSpace(d.Description)
	d.Currency = valueobject.NormalizeCurrency(string(d.Currency))
	d.Date = shared.Today(d.Date)
	if !d.Amount.IsPositive() {
		return d, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if d.Description == "" {
		return d, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	return d, nil
}

// Filter narrows a money flow list. Date bounds are inclusive.
type Filter struct {
	shared.PageRequest
	PropertyID        *uuid.UUID
	Type              *FlowType
	DateFrom          *time.Time
	DateTo            *time.Time
	ExpenseCategoryID *uuid.UUID
	TenantID          *uuid.UUID
	Search            string
}

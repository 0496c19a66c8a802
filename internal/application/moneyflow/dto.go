package moneyflow

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/application/pipeline"
	"github.com/propman/backend/internal/domain/moneyflow"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// MoneyFlowFields are the attributes that can change after creation
type MoneyFlowFields struct {
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	Date              time.Time       `json:"date"`
	Description       string          `json:"description"`
	ExpenseCategoryID *uuid.UUID      `json:"expense_category_id"`
	IncomeSource      *string         `json:"income_source"`
	TenantID          *uuid.UUID      `json:"tenant_id"`
	LeaseID           *uuid.UUID      `json:"lease_id"`
	Reference         *string         `json:"reference"`
	Notes             *string         `json:"notes"`
}

func (f MoneyFlowFields) details() moneyflow.Details {
	return moneyflow.Details{
		Amount:            f.Amount,
		Currency:          valueobject.Currency(f.Currency),
		Date:              f.Date,
		Description:       f.Description,
		ExpenseCategoryID: f.ExpenseCategoryID,
		IncomeSource:      f.IncomeSource,
		TenantID:          f.TenantID,
		LeaseID:           f.LeaseID,
		Reference:         f.Reference,
		Notes:             f.Notes,
	}
}

// CreateMoneyFlowCommand records income or expenditure for a property
type CreateMoneyFlowCommand struct {
	pipeline.Command
	PropertyID uuid.UUID `json:"property_id"`
	Type       int       `json:"type"`
	MoneyFlowFields
}

// RequestName implements pipeline.Request
func (CreateMoneyFlowCommand) RequestName() string { return "CreateMoneyFlow" }

// UpdateMoneyFlowCommand replaces every field except property and type
type UpdateMoneyFlowCommand struct {
	pipeline.Command
	ID uuid.UUID `json:"-"`
	MoneyFlowFields
}

// RequestName implements pipeline.Request
func (UpdateMoneyFlowCommand) RequestName() string { return "UpdateMoneyFlow" }

// DeleteMoneyFlowCommand removes a money flow
type DeleteMoneyFlowCommand struct {
	pipeline.Command
	ID uuid.UUID
}

// RequestName implements pipeline.Request
func (DeleteMoneyFlowCommand) RequestName() string { return "DeleteMoneyFlow" }

// GetMoneyFlowQuery loads a single money flow
type GetMoneyFlowQuery struct {
	pipeline.Query
	ID uuid.UUID
}

// RequestName implements pipeline.Request
func (GetMoneyFlowQuery) RequestName() string { return "GetMoneyFlow" }

// ListMoneyFlowsQuery pages through money flows, newest first
type ListMoneyFlowsQuery struct {
	pipeline.Query
	shared.PageRequest
	PropertyID        *uuid.UUID
	Type              *int
	DateFrom          *time.Time
	DateTo            *time.Time
	ExpenseCategoryID *uuid.UUID
	TenantID          *uuid.UUID
	SearchTerm        string
}

// RequestName implements pipeline.Request
func (ListMoneyFlowsQuery) RequestName() string { return "ListMoneyFlows" }

// MoneyFlowResponse is the full representation of a money flow
type MoneyFlowResponse struct {
	ID                  uuid.UUID       `json:"id"`
	PropertyID          uuid.UUID       `json:"property_id"`
	Type                int             `json:"type"`
	TypeName            string          `json:"type_name"`
	Amount              decimal.Decimal `json:"amount"`
	Currency            string          `json:"currency"`
	Date                time.Time       `json:"date"`
	Description         string          `json:"description"`
	ExpenseCategoryID   *uuid.UUID      `json:"expense_category_id,omitempty"`
	ExpenseCategoryName *string         `json:"expense_category_name,omitempty"`
	IncomeSource        *string         `json:"income_source,omitempty"`
	TenantID            *uuid.UUID      `json:"tenant_id,omitempty"`
	LeaseID             *uuid.UUID      `json:"lease_id,omitempty"`
	Reference           *string         `json:"reference,omitempty"`
	Notes               *string         `json:"notes,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// MoneyFlowListItem is the slim list representation of a money flow
type MoneyFlowListItem struct {
	ID                  uuid.UUID       `json:"id"`
	PropertyID          uuid.UUID       `json:"property_id"`
	Type                int             `json:"type"`
	TypeName            string          `json:"type_name"`
	Amount              decimal.Decimal `json:"amount"`
	Currency            string          `json:"currency"`
	Date                time.Time       `json:"date"`
	Description         string          `json:"description"`
	ExpenseCategoryName *string         `json:"expense_category_name,omitempty"`
	IncomeSource        *string         `json:"income_source,omitempty"`
	Reference           *string         `json:"reference,omitempty"`
}

func toMoneyFlowResponse(m *moneyflow.MoneyFlow, categoryName *string) *MoneyFlowResponse {
	return &MoneyFlowResponse{
		ID:                  m.ID,
		PropertyID:          m.PropertyID,
		Type:                int(m.Type),
		TypeName:            m.Type.String(),
		Amount:              m.Amount,
		Currency:            m.Currency.String(),
		Date:                m.Date,
		Description:         m.Description,
		ExpenseCategoryID:   m.ExpenseCategoryID,
		ExpenseCategoryName: categoryName,
		IncomeSource:        m.IncomeSource,
		TenantID:            m.TenantID,
		LeaseID:             m.LeaseID,
		Reference:           m.Reference,
		Notes:               m.Notes,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func toMoneyFlowListItem(m moneyflow.MoneyFlow, categoryName *string) MoneyFlowListItem {
	return MoneyFlowListItem{
		ID:                  m.ID,
		PropertyID:          m.PropertyID,
		Type:                int(m.Type),
		TypeName:            m.Type.String(),
		Amount:              m.Amount,
		Currency:            m.Currency.String(),
		Date:                m.Date,
		Description:         m.Description,
		ExpenseCategoryName: categoryName,
		IncomeSource:        m.IncomeSource,
		Reference:           m.Reference,
	}
}

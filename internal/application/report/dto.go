package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/application/pipeline"
	"github.com/shopspring/decimal"
)

// GetPropertySummaryQuery requests the income and expense summary of a property.
// DateFrom and DateTo default to the twelve months ending now.
type GetPropertySummaryQuery struct {
	pipeline.Query
	PropertyID uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
	Currency   string
}

// RequestName implements pipeline.Request
func (GetPropertySummaryQuery) RequestName() string { return "GetPropertySummary" }

// IncomeGroup totals income entries sharing a source
type IncomeGroup struct {
	Source string          `json:"source"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// ExpenseGroup totals expense entries sharing a category.
// CategoryID is nil for the uncategorized group.
type ExpenseGroup struct {
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name"`
	Amount       decimal.Decimal `json:"amount"`
	Count        int             `json:"count"`
}

// PropertySummaryResponse is the financial summary of a property over a period
type PropertySummaryResponse struct {
	PropertyID       uuid.UUID       `json:"property_id"`
	PropertyName     string          `json:"property_name"`
	DateFrom         time.Time       `json:"date_from"`
	DateTo           time.Time       `json:"date_to"`
	Currency         string          `json:"currency"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	NetIncome        decimal.Decimal `json:"net_income"`
	ProfitMargin     decimal.Decimal `json:"profit_margin"`
	IncomeBreakdown  []IncomeGroup   `json:"income_breakdown"`
	ExpenseBreakdown []ExpenseGroup  `json:"expense_breakdown"`
}

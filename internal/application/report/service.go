package report

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/application/pipeline"
	"github.com/propman/backend/internal/domain/expense"
	"github.com/propman/backend/internal/domain/moneyflow"
	"github.com/propman/backend/internal/domain/property"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
)

// ReportService builds financial reports from money flows
type ReportService struct {
	pipe       *pipeline.Pipeline
	properties property.PropertyRepository
	flows      moneyflow.MoneyFlowRepository
	categories expense.CategoryRepository
	clock      shared.Clock
}

// NewReportService creates a new ReportService
func NewReportService(
	pipe *pipeline.Pipeline,
	properties property.PropertyRepository,
	flows moneyflow.MoneyFlowRepository,
	categories expense.CategoryRepository,
	clock shared.Clock,
) *ReportService {
	return &ReportService{
		pipe:       pipe,
		properties: properties,
		flows:      flows,
		categories: categories,
		clock:      clock,
	}
}

// PropertySummary returns income, expenses and profitability of a property
func (s *ReportService) PropertySummary(ctx context.Context, q GetPropertySummaryQuery) (*PropertySummaryResponse, error) {
	return pipeline.Send(ctx, s.pipe, q, s.propertySummary)
}

func (s *ReportService) propertySummary(ctx context.Context, q GetPropertySummaryQuery) (*PropertySummaryResponse, error) {
	p, err := s.properties.FindByID(ctx, q.PropertyID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NotFound(property.EntityName, q.PropertyID)
	}
	if err != nil {
		return nil, err
	}

	from, to := summaryRange(q.DateFrom, q.DateTo, s.clock.Now())
	flows, err := s.flows.FindForProperty(ctx, q.PropertyID, from, to)
	if err != nil {
		return nil, err
	}

	var categoryIDs []uuid.UUID
	for _, f := range flows {
		if f.Type == moneyflow.FlowTypeExpense && f.ExpenseCategoryID != nil {
			categoryIDs = append(categoryIDs, *f.ExpenseCategoryID)
		}
	}
	var names map[uuid.UUID]string
	if len(categoryIDs) > 0 {
		if names, err = s.categories.FindNames(ctx, categoryIDs); err != nil {
			return nil, err
		}
	}

	summary := Summarize(flows, names)
	return &PropertySummaryResponse{
		PropertyID:       p.ID,
		PropertyName:     p.Name,
		DateFrom:         from,
		DateTo:           to,
		Currency:         summaryCurrency(q.Currency).String(),
		TotalIncome:      summary.TotalIncome,
		TotalExpenses:    summary.TotalExpenses,
		NetIncome:        summary.NetIncome,
		ProfitMargin:     summary.ProfitMargin,
		IncomeBreakdown:  summary.IncomeBreakdown,
		ExpenseBreakdown: summary.ExpenseBreakdown,
	}, nil
}

// summaryRange fills missing bounds and truncates both to whole days: to
// defaults to today, from to one year before to.
func summaryRange(from, to *time.Time, now time.Time) (time.Time, time.Time) {
	end := shared.Today(now)
	if to != nil {
		end = shared.Today(*to)
	}
	start := end.AddDate(-1, 0, 0)
	if from != nil {
		start = shared.Today(*from)
	}
	return start, end
}

func summaryCurrency(code string) valueobject.Currency {
	if strings.TrimSpace(code) == "" {
		return valueobject.DefaultCurrency
	}
	return valueobject.NormalizeCurrency(code)
}

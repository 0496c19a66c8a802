package report

import (
	"cmp"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/moneyflow"
	"github.com/shopspring/decimal"
)

// Group labels used when an entry cannot be attributed
const (
	UnspecifiedSource    = "Unspecified"
	UnknownCategory      = "Unknown"
	UncategorizedExpense = "Uncategorized"
)

var hundred = decimal.NewFromInt(100)

// Summary is the result of aggregating a set of money flows
type Summary struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	NetIncome        decimal.Decimal
	ProfitMargin     decimal.Decimal
	IncomeBreakdown  []IncomeGroup
	ExpenseBreakdown []ExpenseGroup
}

// Summarize aggregates flows into totals and breakdowns. categoryNames maps
// expense category ids to display names; ids missing from it are labelled
// Unknown. Expense entries without a category form an Uncategorized group.
// Both breakdowns are ordered by amount descending, then label ascending.
func Summarize(flows []moneyflow.MoneyFlow, categoryNames map[uuid.UUID]string) Summary {
	s := Summary{
		TotalIncome:      decimal.Zero,
		TotalExpenses:    decimal.Zero,
		IncomeBreakdown:  []IncomeGroup{},
		ExpenseBreakdown: []ExpenseGroup{},
	}

	incomeIdx := make(map[string]int)
	expenseIdx := make(map[uuid.UUID]int)
	uncategorized := -1

	for _, f := range flows {
		switch f.Type {
		case moneyflow.FlowTypeIncome:
			s.TotalIncome = s.TotalIncome.Add(f.Amount)

			source := UnspecifiedSource
			if f.IncomeSource != nil && strings.TrimSpace(*f.IncomeSource) != "" {
				source = strings.TrimSpace(*f.IncomeSource)
			}
			i, ok := incomeIdx[source]
			if !ok {
				i = len(s.IncomeBreakdown)
				incomeIdx[source] = i
				s.IncomeBreakdown = append(s.IncomeBreakdown, IncomeGroup{Source: source, Amount: decimal.Zero})
			}
			s.IncomeBreakdown[i].Amount = s.IncomeBreakdown[i].Amount.Add(f.Amount)
			s.IncomeBreakdown[i].Count++

		case moneyflow.FlowTypeExpense:
			s.TotalExpenses = s.TotalExpenses.Add(f.Amount)

			var i int
			if f.ExpenseCategoryID == nil {
				if uncategorized < 0 {
					uncategorized = len(s.ExpenseBreakdown)
					s.ExpenseBreakdown = append(s.ExpenseBreakdown, ExpenseGroup{CategoryName: UncategorizedExpense, Amount: decimal.Zero})
				}
				i = uncategorized
			} else {
				id := *f.ExpenseCategoryID
				var ok bool
				if i, ok = expenseIdx[id]; !ok {
					name, found := categoryNames[id]
					if !found {
						name = UnknownCategory
					}
					i = len(s.ExpenseBreakdown)
					expenseIdx[id] = i
					s.ExpenseBreakdown = append(s.ExpenseBreakdown, ExpenseGroup{CategoryID: &id, CategoryName: name, Amount: decimal.Zero})
				}
			}
			s.ExpenseBreakdown[i].Amount = s.ExpenseBreakdown[i].Amount.Add(f.Amount)
			s.ExpenseBreakdown[i].Count++
		}
	}

	s.NetIncome = s.TotalIncome.Sub(s.TotalExpenses)
	s.ProfitMargin = ProfitMargin(s.TotalIncome, s.NetIncome)

	slices.SortStableFunc(s.IncomeBreakdown, func(a, b IncomeGroup) int {
		return byAmountThenLabel(a.Amount, b.Amount, a.Source, b.Source)
	})
	slices.SortStableFunc(s.ExpenseBreakdown, func(a, b ExpenseGroup) int {
		return byAmountThenLabel(a.Amount, b.Amount, a.CategoryName, b.CategoryName)
	})
	return s
}

// ProfitMargin is net/income as a percentage rounded to 2 places, or zero
// when there is no income.
func ProfitMargin(totalIncome, netIncome decimal.Decimal) decimal.Decimal {
	if !totalIncome.IsPositive() {
		return decimal.Zero
	}
	return netIncome.Mul(hundred).DivRound(totalIncome, 8).Round(2)
}

func byAmountThenLabel(amountA, amountB decimal.Decimal, labelA, labelB string) int {
	if c := amountB.Cmp(amountA); c != 0 {
		return c
	}
	return cmp.Compare(labelA, labelB)
}

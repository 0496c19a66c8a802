package report

import (
	"testing"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/moneyflow"
	"github.com/propman/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func income(amount int64, source *string) moneyflow.MoneyFlow {
	return moneyflow.MoneyFlow{
		Type:    moneyflow.FlowTypeIncome,
		Details: moneyflow.Details{Amount: decimal.NewFromInt(amount), IncomeSource: source},
	}
}

func spend(amount string, category *uuid.UUID) moneyflow.MoneyFlow {
	return moneyflow.MoneyFlow{
		Type:    moneyflow.FlowTypeExpense,
		Details: moneyflow.Details{Amount: decimal.RequireFromString(amount), ExpenseCategoryID: category},
	}
}

func TestSummarize_Example(t *testing.T) {
	a := uuid.New()
	flows := []moneyflow.MoneyFlow{
		income(1000, testutil.Ptr("Rent")),
		spend("300", &a),
		spend("200", &a),
	}

	s := Summarize(flows, map[uuid.UUID]string{a: "A"})

	assert.True(t, s.TotalIncome.Equal(decimal.NewFromInt(1000)))
	assert.True(t, s.TotalExpenses.Equal(decimal.NewFromInt(500)))
	assert.True(t, s.NetIncome.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "50", s.ProfitMargin.String())
	assert.Equal(t, "50.00", s.ProfitMargin.StringFixed(2))

	require.Len(t, s.ExpenseBreakdown, 1)
	assert.Equal(t, "A", s.ExpenseBreakdown[0].CategoryName)
	assert.Equal(t, &a, s.ExpenseBreakdown[0].CategoryID)
	assert.True(t, s.ExpenseBreakdown[0].Amount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 2, s.ExpenseBreakdown[0].Count)

	require.Len(t, s.IncomeBreakdown, 1)
	assert.Equal(t, "Rent", s.IncomeBreakdown[0].Source)
	assert.Equal(t, 1, s.IncomeBreakdown[0].Count)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil)

	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.NetIncome.IsZero())
	assert.True(t, s.ProfitMargin.IsZero())
	assert.NotNil(t, s.IncomeBreakdown)
	assert.NotNil(t, s.ExpenseBreakdown)
	assert.Empty(t, s.ExpenseBreakdown)
}

func TestSummarize_IncomeGrouping(t *testing.T) {
	flows := []moneyflow.MoneyFlow{
		income(120, nil),
		income(80, testutil.Ptr("  ")),
		income(900, testutil.Ptr("Rent")),
		income(150, testutil.Ptr("Parking")),
		income(150, testutil.Ptr("Laundry")),
	}

	s := Summarize(flows, nil)

	require.Len(t, s.IncomeBreakdown, 4)
	assert.Equal(t, "Rent", s.IncomeBreakdown[0].Source)
	assert.Equal(t, UnspecifiedSource, s.IncomeBreakdown[1].Source)
	assert.Equal(t, 2, s.IncomeBreakdown[1].Count)
	assert.True(t, s.IncomeBreakdown[1].Amount.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "Laundry", s.IncomeBreakdown[2].Source, "ties are ordered by label")
	assert.Equal(t, "Parking", s.IncomeBreakdown[3].Source)
}

func TestSummarize_UnknownAndUncategorizedExpenses(t *testing.T) {
	known, gone := uuid.New(), uuid.New()
	flows := []moneyflow.MoneyFlow{
		income(2000, testutil.Ptr("Rent")),
		spend("400", &known),
		spend("250.50", &gone),
		spend("100", nil),
		spend("20", nil),
	}

	s := Summarize(flows, map[uuid.UUID]string{known: "Repairs"})

	assert.True(t, s.TotalExpenses.Equal(decimal.RequireFromString("770.50")))
	require.Len(t, s.ExpenseBreakdown, 3)
	assert.Equal(t, "Repairs", s.ExpenseBreakdown[0].CategoryName)
	assert.Equal(t, UnknownCategory, s.ExpenseBreakdown[1].CategoryName)
	assert.Equal(t, UncategorizedExpense, s.ExpenseBreakdown[2].CategoryName)
	assert.Nil(t, s.ExpenseBreakdown[2].CategoryID)
	assert.Equal(t, 2, s.ExpenseBreakdown[2].Count)
	assert.True(t, s.ExpenseBreakdown[2].Amount.Equal(decimal.NewFromInt(120)))
}

func TestProfitMargin(t *testing.T) {
	tests := []struct {
		income, net string
		want        string
	}{
		{"1000", "500", "50"},
		{"0", "-300", "0"},
		{"3", "1", "33.33"},
		{"3", "2", "66.67"},
		{"800", "-400", "-50"},
		{"200", "0.01", "0.01"},
		{"1000", "0.05", "0.01"},
		{"1000", "-0.05", "-0.01"},
	}

	for _, tt := range tests {
		got := ProfitMargin(decimal.RequireFromString(tt.income), decimal.RequireFromString(tt.net))
		assert.Equal(t, tt.want, got.String(), "income=%s net=%s", tt.income, tt.net)
	}
}

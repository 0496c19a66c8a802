package expense

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC)

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("Repairs & Maintenance", " repairs ", nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, "REPAIRS", c.Code)
	assert.True(t, c.IsActive)

	deactivated := c.Deactivate(testNow.Add(time.Hour))
	assert.False(t, deactivated.IsActive)
	assert.True(t, deactivated.Activate(testNow.Add(2*time.Hour)).IsActive)

	_, err = NewCategory("", "X", nil, testNow)
	assert.Error(t, err)
}

func TestNewExpense(t *testing.T) {
	details := Details{
		CategoryID:  uuid.New(),
		Description: "Boiler service",
		Amount:      decimal.RequireFromString("95.00"),
		Currency:    "gbp",
		Date:        testNow,
	}

	e, err := NewExpense(uuid.New(), details, testNow)
	require.NoError(t, err)
	assert.Equal(t, "GBP", e.Currency.String())

	details.Amount = decimal.Zero
	_, err = NewExpense(uuid.New(), details, testNow)
	assert.Error(t, err)
}

func TestExpense_Update(t *testing.T) {
	details := Details{
		CategoryID:  uuid.New(),
		Description: "Gutter clearing",
		Amount:      decimal.NewFromInt(60),
		Currency:    "GBP",
		Date:        testNow,
	}
	e, err := NewExpense(uuid.New(), details, testNow)
	require.NoError(t, err)

	details.Amount = decimal.NewFromInt(75)
	updated, err := e.Update(details, testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(75)))
	assert.True(t, e.Amount.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, e.PropertyID, updated.PropertyID)
}

func TestNewAttachment(t *testing.T) {
	expenseID := uuid.New()

	a, err := NewAttachment(expenseID, `C:\Users\me\Invoice.PDF`, "application/pdf", 2048, testNow)
	require.NoError(t, err)
	assert.Equal(t, "Invoice.PDF", a.FileName)
	assert.Equal(t, ".pdf", a.Extension())
	assert.True(t, strings.HasPrefix(a.StoragePath, "expenses/"+expenseID.String()+"/"))
	assert.True(t, strings.HasSuffix(a.StoragePath, ".pdf"))

	_, err = NewAttachment(expenseID, "empty.pdf", "application/pdf", 0, testNow)
	assert.Error(t, err)

	_, err = NewAttachment(expenseID, strings.Repeat("a", 256), "application/pdf", 1, testNow)
	assert.Error(t, err)
}

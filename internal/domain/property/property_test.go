package property

import (
	"errors"
	"testing"
	"time"

	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func validDetails() Details {
	return Details{
		Name:         "Maple Cottage",
		AddressLine1: "12 Church Lane",
		City:         "Bath",
		County:       "Somerset",
		Postcode:     "ba1 1aa",
		Type:         PropertyTypeCottage,
		Bedrooms:     3,
		Bathrooms:    1,
	}
}

func TestNewProperty(t *testing.T) {
	t.Run("normalizes postcode and starts active", func(t *testing.T) {
		p, err := NewProperty(validDetails(), testNow)
		require.NoError(t, err)

		assert.Equal(t, "BA11AA", p.Postcode)
		assert.Equal(t, PropertyStatusActive, p.Status)
		assert.Equal(t, testNow, p.CreatedAt)
		assert.Equal(t, testNow, p.UpdatedAt)
		assert.NotEqual(t, [16]byte{}, [16]byte(p.ID))
	})

	t.Run("stores sw1a 1aa as SW1A1AA", func(t *testing.T) {
		d := validDetails()
		d.Postcode = "sw1a 1aa"
		p, err := NewProperty(d, testNow)
		require.NoError(t, err)
		assert.Equal(t, "SW1A1AA", p.Postcode)
	})

	t.Run("rejects undefined type", func(t *testing.T) {
		d := validDetails()
		d.Type = PropertyType(42)
		_, err := NewProperty(d, testNow)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_PROPERTY_TYPE", domainErr.Code)
	})

	t.Run("rejects non-positive purchase price", func(t *testing.T) {
		d := validDetails()
		zero := decimal.Zero
		d.PurchasePrice = &zero
		_, err := NewProperty(d, testNow)
		assert.Error(t, err)
	})
}

func TestProperty_Update(t *testing.T) {
	p, err := NewProperty(validDetails(), testNow)
	require.NoError(t, err)

	later := testNow.Add(time.Hour)
	d := validDetails()
	d.Name = "Maple Cottage (renovated)"
	d.Postcode = "Ba2 4qp"

	updated, err := p.Update(d, later)
	require.NoError(t, err)

	assert.Equal(t, "Maple Cottage (renovated)", updated.Name)
	assert.Equal(t, "BA24QP", updated.Postcode)
	assert.Equal(t, later, updated.UpdatedAt)
	assert.Equal(t, testNow, updated.CreatedAt)
	assert.Equal(t, "Maple Cottage", p.Name, "original value is left untouched")
}

func TestProperty_ArchiveActivate(t *testing.T) {
	p, err := NewProperty(validDetails(), testNow)
	require.NoError(t, err)

	archived := p.Archive(testNow.Add(time.Minute))
	assert.True(t, archived.IsArchived())
	assert.False(t, p.IsArchived())

	active := archived.Activate(testNow.Add(2 * time.Minute))
	assert.Equal(t, PropertyStatusActive, active.Status)
}

func TestPropertyType(t *testing.T) {
	assert.True(t, PropertyTypeDetached.IsValid())
	assert.True(t, PropertyTypeHouseShare.IsValid())
	assert.False(t, PropertyType(0).IsValid())
	assert.False(t, PropertyType(9).IsValid())
	assert.Equal(t, "SemiDetached", PropertyTypeSemiDetached.String())
	assert.Equal(t, "Archived", PropertyStatusArchived.String())
}

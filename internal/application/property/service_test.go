package property

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/application/validation"
	"github.com/propman/backend/internal/domain/property"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*PropertyService, *testutil.MockPropertyRepository, *testutil.TestTransactor) {
	t.Helper()
	registry := validation.NewRegistry()
	RegisterValidators(registry, testutil.FixedClock())
	pipe, tx := testutil.NewPipeline(registry)
	repo := new(testutil.MockPropertyRepository)
	return NewPropertyService(pipe, repo, testutil.FixedClock()), repo, tx
}

func validFields() PropertyFields {
	return PropertyFields{
		Name:         "Flat 3, Harbour View",
		AddressLine1: "3 Quay Street",
		City:         "Bristol",
		County:       "Bristol",
		Postcode:     "bs1 4dj",
		Type:         int(property.PropertyTypeFlat),
		Bedrooms:     2,
		Bathrooms:    1,
	}
}

func existingProperty(t *testing.T) *property.Property {
	t.Helper()
	p, err := property.NewProperty(validFields().details(), testutil.FixedNow.Add(-24*time.Hour))
	require.NoError(t, err)
	return p
}

func TestPropertyService_Create(t *testing.T) {
	svc, repo, tx := setupService(t)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*property.Property")).Return(nil)

	resp, err := svc.Create(context.Background(), CreatePropertyCommand{PropertyFields: validFields()})
	require.NoError(t, err)

	assert.Equal(t, "BS14DJ", resp.Postcode)
	assert.Equal(t, "Flat", resp.TypeName)
	assert.Equal(t, "Active", resp.StatusName)
	assert.Equal(t, testutil.FixedNow, resp.CreatedAt)
	assert.Equal(t, 1, tx.Committed)
	repo.AssertExpectations(t)
}

func TestPropertyService_Create_ValidationFailure(t *testing.T) {
	svc, repo, tx := setupService(t)

	fields := validFields()
	fields.Name = ""
	fields.Postcode = "NOT A POSTCODE"
	fields.Type = 99
	fields.Bedrooms = 21
	price := decimal.Zero
	fields.PurchasePrice = &price
	future := testutil.FixedNow.Add(48 * time.Hour)
	fields.PurchaseDate = &future

	_, err := svc.Create(context.Background(), CreatePropertyCommand{PropertyFields: fields})

	var ve *shared.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "postcode")
	assert.Contains(t, ve.Fields, "type")
	assert.Contains(t, ve.Fields, "bedrooms")
	assert.Contains(t, ve.Fields, "purchase_price")
	assert.Contains(t, ve.Fields, "purchase_date")
	assert.Equal(t, 0, tx.Begun)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPropertyService_Update(t *testing.T) {
	svc, repo, _ := setupService(t)
	existing := existingProperty(t)
	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(p *property.Property) bool {
		return p.ID == existing.ID && p.Name == "Harbour View" && p.UpdatedAt.Equal(testutil.FixedNow)
	})).Return(nil)

	fields := validFields()
	fields.Name = "Harbour View"
	resp, err := svc.Update(context.Background(), UpdatePropertyCommand{ID: existing.ID, PropertyFields: fields})
	require.NoError(t, err)
	assert.Equal(t, "Harbour View", resp.Name)
	repo.AssertExpectations(t)
}

func TestPropertyService_Update_NotFound(t *testing.T) {
	svc, repo, tx := setupService(t)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	_, err := svc.Update(context.Background(), UpdatePropertyCommand{ID: id, PropertyFields: validFields()})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Contains(t, err.Error(), "Property with id "+id.String())
	assert.Equal(t, 1, tx.RolledBack)
}

func TestPropertyService_ArchiveAndActivate(t *testing.T) {
	svc, repo, _ := setupService(t)
	existing := existingProperty(t)
	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(p *property.Property) bool {
		return p.Status == property.PropertyStatusArchived
	})).Return(nil).Once()

	require.NoError(t, svc.Archive(context.Background(), ArchivePropertyCommand{ID: existing.ID}))

	repo.On("Save", mock.Anything, mock.MatchedBy(func(p *property.Property) bool {
		return p.Status == property.PropertyStatusActive
	})).Return(nil).Once()
	resp, err := svc.Activate(context.Background(), ActivatePropertyCommand{ID: existing.ID})
	require.NoError(t, err)
	assert.Equal(t, "Active", resp.StatusName)
	repo.AssertExpectations(t)
}

func TestPropertyService_Get_NotFound(t *testing.T) {
	svc, repo, tx := setupService(t)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	_, err := svc.Get(context.Background(), GetPropertyQuery{ID: id})
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, 0, tx.Begun, "queries run outside a transaction")
}

func TestPropertyService_List(t *testing.T) {
	svc, repo, _ := setupService(t)
	archived := property.PropertyStatusArchived
	p := existingProperty(t)

	repo.On("List", mock.Anything, property.Filter{
		PageRequest: shared.PageRequest{PageNumber: 2, PageSize: 10},
		Status:      &archived,
		Search:      "harbour",
	}).Return([]property.Property{*p}, int64(11), nil)

	status := int(archived)
	page, err := svc.List(context.Background(), ListPropertiesQuery{
		PageRequest: shared.PageRequest{PageNumber: 2, PageSize: 10},
		Status:      &status,
		SearchTerm:  "harbour",
	})
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, p.ID, page.Items[0].ID)
	assert.Equal(t, int64(11), page.TotalCount)
	assert.Equal(t, 2, page.TotalPages())
	assert.True(t, page.HasPreviousPage())
	assert.False(t, page.HasNextPage())
}

func TestPropertyService_List_InvalidPage(t *testing.T) {
	svc, repo, _ := setupService(t)

	_, err := svc.List(context.Background(), ListPropertiesQuery{
		PageRequest: shared.PageRequest{PageNumber: 0, PageSize: 101},
	})

	var ve *shared.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "page_number")
	assert.Contains(t, ve.Fields, "page_size")
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

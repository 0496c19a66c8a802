package tenancy

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/application/pipeline"
	"github.com/propman/backend/internal/application/validation"
	"github.com/propman/backend/internal/domain/property"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/tenancy"
	"github.com/propman/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	tenants    *testutil.MockTenantRepository
	leases     *testutil.MockLeaseRepository
	properties *testutil.MockPropertyRepository
	tx         *testutil.TestTransactor

	tenantService *TenantService
	leaseService  *LeaseService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	registry := validation.NewRegistry()
	RegisterValidators(registry)
	pipe, tx := testutil.NewPipeline(registry)

	f := &fixture{
		tenants:    new(testutil.MockTenantRepository),
		leases:     new(testutil.MockLeaseRepository),
		properties: new(testutil.MockPropertyRepository),
		tx:         tx,
	}
	f.tenantService = NewTenantService(pipe, f.tenants, testutil.FixedClock())
	f.leaseService = NewLeaseService(pipe, f.leases, f.tenants, f.properties, testutil.FixedClock())
	return f
}

func validTenantFields() TenantFields {
	return TenantFields{
		FirstName: "Amelia",
		LastName:  "Hart",
		Email:     " Amelia.Hart@Example.com ",
		Phone:     testutil.Ptr("07700 900123"),
	}
}

func validLeaseFields() LeaseFields {
	return LeaseFields{
		StartDate:      testutil.Date(2025, 1, 1),
		MonthlyRent:    decimal.NewFromInt(1250),
		Currency:       "GBP",
		DepositAmount:  testutil.Ptr(decimal.NewFromInt(1442)),
		RentDayOfMonth: 1,
	}
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var ve *shared.ValidationError
	require.True(t, errors.As(err, &ve), "expected validation error, got %v", err)
	return ve.Fields
}

// =============================================================================
// Tenants
// =============================================================================

func TestTenantService_Create(t *testing.T) {
	f := newFixture(t)
	f.tenants.On("ExistsByEmail", mock.Anything, "amelia.hart@example.com", (*uuid.UUID)(nil)).Return(false, nil)
	f.tenants.On("Save", mock.Anything, mock.AnythingOfType("*tenancy.Tenant")).Return(nil)

	resp, err := f.tenantService.Create(context.Background(), CreateTenantCommand{TenantFields: validTenantFields()})
	require.NoError(t, err)

	assert.Equal(t, "amelia.hart@example.com", resp.Email)
	assert.Equal(t, "Amelia Hart", resp.FullName)
	assert.Equal(t, 1, f.tx.Committed)
	f.tenants.AssertExpectations(t)
}

func TestTenantService_Create_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.tenants.On("ExistsByEmail", mock.Anything, "amelia.hart@example.com", (*uuid.UUID)(nil)).Return(true, nil)

	_, err := f.tenantService.Create(context.Background(), CreateTenantCommand{TenantFields: validTenantFields()})

	fields := fieldErrors(t, err)
	assert.Equal(t, []string{"A tenant with this email already exists"}, fields["email"])
	assert.Equal(t, 1, f.tx.RolledBack)
	f.tenants.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTenantService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*TenantFields)
		field  string
	}{
		{"missing first name", func(f *TenantFields) { f.FirstName = "" }, "first_name"},
		{"missing email", func(f *TenantFields) { f.Email = "  " }, "email"},
		{"malformed email", func(f *TenantFields) { f.Email = "not-an-email" }, "email"},
		{"landline phone", func(f *TenantFields) { f.Phone = testutil.Ptr("0117 496 0000") }, "phone"},
		{"long emergency phone", func(f *TenantFields) { f.EmergencyPhone = testutil.Ptr("+44 7700 900123 ext 45") }, "emergency_phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			fields := validTenantFields()
			tt.modify(&fields)

			_, err := f.tenantService.Create(context.Background(), CreateTenantCommand{TenantFields: fields})

			assert.Contains(t, fieldErrors(t, err), tt.field)
			assert.Equal(t, 0, f.tx.Begun)
			f.tenants.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestTenantService_Create_AcceptsInternationalMobileAndBlankPhone(t *testing.T) {
	for _, phone := range []string{"+44 7700 900123", "+447700900123", "(07700) 900 123", ""} {
		f := newFixture(t)
		f.tenants.On("ExistsByEmail", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
		f.tenants.On("Save", mock.Anything, mock.Anything).Return(nil)

		fields := validTenantFields()
		fields.Phone = testutil.Ptr(phone)
		_, err := f.tenantService.Create(context.Background(), CreateTenantCommand{TenantFields: fields})
		assert.NoError(t, err, phone)
	}
}

func TestTenantService_Update_ExcludesSelfFromEmailCheck(t *testing.T) {
	f := newFixture(t)
	existing, err := tenancy.NewTenant(validTenantFields().details(), testutil.FixedNow)
	require.NoError(t, err)

	f.tenants.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	f.tenants.On("ExistsByEmail", mock.Anything, "amelia.hart@example.com", &existing.ID).Return(false, nil)
	f.tenants.On("Save", mock.Anything, mock.Anything).Return(nil)

	fields := validTenantFields()
	fields.LastName = "Hart-Jones"
	resp, err := f.tenantService.Update(context.Background(), UpdateTenantCommand{ID: existing.ID, TenantFields: fields})
	require.NoError(t, err)
	assert.Equal(t, "Amelia Hart-Jones", resp.FullName)
}

func TestTenantService_Get_NotFound(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()
	f.tenants.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	_, err := f.tenantService.Get(context.Background(), GetTenantQuery{ID: id})
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.EqualError(t, err, "Tenant with id "+id.String()+" was not found")
}

// =============================================================================
// Leases
// =============================================================================

func TestLeaseService_Create(t *testing.T) {
	f := newFixture(t)
	p, err := property.NewProperty(property.Details{
		Name: "12 Mill Lane", AddressLine1: "12 Mill Lane", City: "Leeds", County: "West Yorkshire",
		Postcode: "LS1 4AP", Type: property.PropertyTypeTerraced,
	}, testutil.FixedNow)
	require.NoError(t, err)
	tenant, err := tenancy.NewTenant(validTenantFields().details(), testutil.FixedNow)
	require.NoError(t, err)

	f.properties.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	f.tenants.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
	f.leases.On("Save", mock.Anything, mock.AnythingOfType("*tenancy.Lease")).Return(nil)

	fields := validLeaseFields()
	fields.Currency = "GBP"
	resp, err := f.leaseService.Create(context.Background(), CreateLeaseCommand{
		PropertyID:  p.ID,
		TenantID:    tenant.ID,
		LeaseFields: fields,
	})
	require.NoError(t, err)

	assert.Equal(t, "12 Mill Lane", resp.PropertyName)
	assert.Equal(t, "Amelia Hart", resp.TenantName)
	assert.Equal(t, "Active", resp.StatusName)
	assert.True(t, decimal.NewFromInt(1250).Equal(resp.MonthlyRent))
}

func TestLeaseService_Create_MissingProperty(t *testing.T) {
	f := newFixture(t)
	propertyID, tenantID := uuid.New(), uuid.New()
	f.properties.On("FindByID", mock.Anything, propertyID).Return(nil, shared.ErrNotFound)

	_, err := f.leaseService.Create(context.Background(), CreateLeaseCommand{
		PropertyID: propertyID, TenantID: tenantID, LeaseFields: validLeaseFields(),
	})

	assert.EqualError(t, err, "Property with id "+propertyID.String()+" was not found")
	f.leases.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLeaseService_Create_Validation(t *testing.T) {
	f := newFixture(t)
	fields := validLeaseFields()
	fields.EndDate = testutil.Ptr(fields.StartDate)
	fields.MonthlyRent = decimal.NewFromInt(100000)
	fields.Currency = "gbp"
	fields.DepositAmount = testutil.Ptr(decimal.NewFromInt(-1))
	fields.RentDayOfMonth = 31

	_, err := f.leaseService.Create(context.Background(), CreateLeaseCommand{LeaseFields: fields})

	errs := fieldErrors(t, err)
	for _, field := range []string{"property_id", "tenant_id", "end_date", "monthly_rent", "currency", "deposit_amount", "rent_day_of_month"} {
		assert.Contains(t, errs, field)
	}
	assert.Equal(t, 0, f.tx.Begun)
}

func TestLeaseService_Terminate(t *testing.T) {
	f := newFixture(t)
	lease, err := tenancy.NewLease(uuid.New(), uuid.New(), validLeaseFields().terms(), testutil.FixedNow)
	require.NoError(t, err)

	f.leases.On("FindByID", mock.Anything, lease.ID).Return(lease, nil)
	f.leases.On("Save", mock.Anything, mock.MatchedBy(func(l *tenancy.Lease) bool {
		return l.Status == tenancy.LeaseStatusTerminated && l.EndDate != nil
	})).Return(nil)
	f.properties.On("FindNames", mock.Anything, []uuid.UUID{lease.PropertyID}).Return(map[uuid.UUID]string{}, nil)
	f.tenants.On("FindByIDs", mock.Anything, []uuid.UUID{lease.TenantID}).Return(map[uuid.UUID]tenancy.Tenant{}, nil)

	resp, err := f.leaseService.Terminate(context.Background(), TerminateLeaseCommand{
		ID:      lease.ID,
		EndDate: testutil.Date(2025, 6, 30),
	})
	require.NoError(t, err)

	assert.Equal(t, "Terminated", resp.StatusName)
	assert.Equal(t, "Unknown", resp.PropertyName)
	assert.Equal(t, "Unknown", resp.TenantName)
}

func TestLeaseService_Terminate_EndBeforeStart(t *testing.T) {
	f := newFixture(t)
	lease, err := tenancy.NewLease(uuid.New(), uuid.New(), validLeaseFields().terms(), testutil.FixedNow)
	require.NoError(t, err)
	f.leases.On("FindByID", mock.Anything, lease.ID).Return(lease, nil)

	_, err = f.leaseService.Terminate(context.Background(), TerminateLeaseCommand{
		ID:      lease.ID,
		EndDate: testutil.Date(2024, 12, 31),
	})

	require.Error(t, err)
	assert.Equal(t, pipeline.OutcomeRejected, pipeline.Classify(err))
	assert.Equal(t, 1, f.tx.RolledBack)
	f.leases.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLeaseService_ExpireEnded(t *testing.T) {
	f := newFixture(t)
	fields := validLeaseFields()
	fields.EndDate = testutil.Ptr(testutil.Date(2025, 3, 31))
	ended, err := tenancy.NewLease(uuid.New(), uuid.New(), fields.terms(), testutil.FixedNow)
	require.NoError(t, err)

	f.leases.On("ListEnded", mock.Anything, testutil.FixedNow).Return([]tenancy.Lease{*ended}, nil)
	f.leases.On("Save", mock.Anything, mock.MatchedBy(func(l *tenancy.Lease) bool {
		return l.ID == ended.ID && l.Status == tenancy.LeaseStatusExpired
	})).Return(nil)

	n, err := f.leaseService.ExpireEnded(context.Background(), ExpireEndedLeasesCommand{})
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	assert.Equal(t, 1, f.tx.Committed)
	f.leases.AssertExpectations(t)
}

func TestLeaseService_ExpireEnded_SaveFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	fields := validLeaseFields()
	fields.EndDate = testutil.Ptr(testutil.Date(2025, 3, 31))
	first, err := tenancy.NewLease(uuid.New(), uuid.New(), fields.terms(), testutil.FixedNow)
	require.NoError(t, err)
	second, err := tenancy.NewLease(uuid.New(), uuid.New(), fields.terms(), testutil.FixedNow)
	require.NoError(t, err)

	asOf := testutil.Date(2025, 4, 1)
	f.leases.On("ListEnded", mock.Anything, asOf).Return([]tenancy.Lease{*first, *second}, nil)
	f.leases.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	f.leases.On("Save", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

	_, err = f.leaseService.ExpireEnded(context.Background(), ExpireEndedLeasesCommand{AsOf: asOf})

	require.Error(t, err)
	assert.Equal(t, 1, f.tx.RolledBack)
	assert.Zero(t, f.tx.Committed)
}

func TestLeaseService_List_ResolvesNames(t *testing.T) {
	f := newFixture(t)
	propertyID := uuid.New()
	tenant, err := tenancy.NewTenant(validTenantFields().details(), testutil.FixedNow)
	require.NoError(t, err)

	known, err := tenancy.NewLease(propertyID, tenant.ID, validLeaseFields().terms(), testutil.FixedNow)
	require.NoError(t, err)
	orphanTenant := uuid.New()
	orphan, err := tenancy.NewLease(propertyID, orphanTenant, validLeaseFields().terms(), testutil.FixedNow)
	require.NoError(t, err)

	f.leases.On("List", mock.Anything, tenancy.LeaseFilter{
		PageRequest: shared.PageRequest{PageNumber: 1, PageSize: 20},
		PropertyID:  &propertyID,
	}).Return([]tenancy.Lease{*known, *orphan}, int64(2), nil)
	f.properties.On("FindNames", mock.Anything, []uuid.UUID{propertyID, propertyID}).
		Return(map[uuid.UUID]string{propertyID: "12 Mill Lane"}, nil)
	f.tenants.On("FindByIDs", mock.Anything, []uuid.UUID{tenant.ID, orphanTenant}).
		Return(map[uuid.UUID]tenancy.Tenant{tenant.ID: *tenant}, nil)

	page, err := f.leaseService.List(context.Background(), ListLeasesQuery{
		PageRequest: shared.PageRequest{PageNumber: 1, PageSize: 20},
		PropertyID:  &propertyID,
	})
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, "Amelia Hart", page.Items[0].TenantName)
	assert.Equal(t, "Unknown", page.Items[1].TenantName)
	assert.Equal(t, "12 Mill Lane", page.Items[1].PropertyName)
	assert.Equal(t, 0, f.tx.Begun)
}

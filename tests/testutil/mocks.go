package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/expense"
	"github.com/propman/backend/internal/domain/moneyflow"
	"github.com/propman/backend/internal/domain/property"
	"github.com/propman/backend/internal/domain/tenancy"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Property
// =============================================================================

// MockPropertyRepository is a mock implementation of property.PropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPropertyRepository) FindNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]string), args.Error(1)
}

func (m *MockPropertyRepository) List(ctx context.Context, filter property.Filter) ([]property.Property, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]property.Property), args.Get(1).(int64), args.Error(2)
}

func (m *MockPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// =============================================================================
// Tenancy
// =============================================================================

// MockTenantRepository is a mock implementation of tenancy.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTenantRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTenantRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]tenancy.Tenant, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) List(ctx context.Context, filter tenancy.TenantFilter) ([]tenancy.Tenant, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tenancy.Tenant), args.Get(1).(int64), args.Error(2)
}

func (m *MockTenantRepository) Save(ctx context.Context, t *tenancy.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

// MockLeaseRepository is a mock implementation of tenancy.LeaseRepository
type MockLeaseRepository struct {
	mock.Mock
}

func (m *MockLeaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Lease, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Lease), args.Error(1)
}

func (m *MockLeaseRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeaseRepository) List(ctx context.Context, filter tenancy.LeaseFilter) ([]tenancy.Lease, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tenancy.Lease), args.Get(1).(int64), args.Error(2)
}

func (m *MockLeaseRepository) ListEnded(ctx context.Context, asOf time.Time) ([]tenancy.Lease, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenancy.Lease), args.Error(1)
}

func (m *MockLeaseRepository) Save(ctx context.Context, l *tenancy.Lease) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

// =============================================================================
// Expense
// =============================================================================

// MockCategoryRepository is a mock implementation of expense.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.Category), args.Error(1)
}

func (m *MockCategoryRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) FindNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]string), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context, filter expense.CategoryFilter) ([]expense.Category, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]expense.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) Save(ctx context.Context, c *expense.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockExpenseRepository is a mock implementation of expense.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.Expense), args.Error(1)
}

func (m *MockExpenseRepository) List(ctx context.Context, filter expense.Filter) ([]expense.Expense, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]expense.Expense), args.Get(1).(int64), args.Error(2)
}

func (m *MockExpenseRepository) Save(ctx context.Context, e *expense.Expense) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAttachmentRepository is a mock implementation of expense.AttachmentRepository
type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Attachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) FindByExpense(ctx context.Context, expenseID uuid.UUID) ([]expense.Attachment, error) {
	args := m.Called(ctx, expenseID)
	return args.Get(0).([]expense.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) Save(ctx context.Context, a *expense.Attachment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAttachmentRepository) DeleteByExpense(ctx context.Context, expenseID uuid.UUID) error {
	args := m.Called(ctx, expenseID)
	return args.Error(0)
}

// =============================================================================
// Money flows
// =============================================================================

// MockMoneyFlowRepository is a mock implementation of moneyflow.MoneyFlowRepository
type MockMoneyFlowRepository struct {
	mock.Mock
}

func (m *MockMoneyFlowRepository) FindByID(ctx context.Context, id uuid.UUID) (*moneyflow.MoneyFlow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*moneyflow.MoneyFlow), args.Error(1)
}

func (m *MockMoneyFlowRepository) List(ctx context.Context, filter moneyflow.Filter) ([]moneyflow.MoneyFlow, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]moneyflow.MoneyFlow), args.Get(1).(int64), args.Error(2)
}

func (m *MockMoneyFlowRepository) FindForProperty(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]moneyflow.MoneyFlow, error) {
	args := m.Called(ctx, propertyID, from, to)
	return args.Get(0).([]moneyflow.MoneyFlow), args.Error(1)
}

func (m *MockMoneyFlowRepository) Save(ctx context.Context, f *moneyflow.MoneyFlow) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockMoneyFlowRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

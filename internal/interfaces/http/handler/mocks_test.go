package handler

import (
	"context"

	expenseapp "github.com/propman/backend/internal/application/expense"
	moneyflowapp "github.com/propman/backend/internal/application/moneyflow"
	propertyapp "github.com/propman/backend/internal/application/property"
	reportapp "github.com/propman/backend/internal/application/report"
	tenancyapp "github.com/propman/backend/internal/application/tenancy"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockPropertyService is a mock implementation of PropertyService
type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) Create(ctx context.Context, cmd propertyapp.CreatePropertyCommand) (*propertyapp.PropertyResponse, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*propertyapp.PropertyResponse), args.Error(1)
}

func (m *MockPropertyService) Update(ctx context.Context, cmd propertyapp.UpdatePropertyCommand) (*propertyapp.PropertyResponse, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*propertyapp.PropertyResponse), args.Error(1)
}

func (m *MockPropertyService) Archive(ctx context.Context, cmd propertyapp.ArchivePropertyCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *MockPropertyService) Activate(ctx context.Context, cmd propertyapp.ActivatePropertyCommand) (*propertyapp.PropertyResponse, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*propertyapp.PropertyResponse), args.Error(1)
}

func (m *MockPropertyService) Get(ctx context.Context, q propertyapp.GetPropertyQuery) (*propertyapp.PropertyResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*propertyapp.PropertyResponse), args.Error(1)
}

func (m *MockPropertyService) List(ctx context.Context, q propertyapp.ListPropertiesQuery) (shared.PagedList[propertyapp.PropertyListItem], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(shared.PagedList[propertyapp.PropertyListItem]), args.Error(1)
}

// MockSummaryService is a mock implementation of SummaryService
type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) PropertySummary(ctx context.Context, q reportapp.GetPropertySummaryQuery) (*reportapp.PropertySummaryResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reportapp.PropertySummaryResponse), args.Error(1)
}

// MockLeaseService is a mock implementation of LeaseService
type MockLeaseService struct {
	mock.Mock
}

func (m *MockLeaseService) Create(ctx context.Context, cmd tenancyapp.CreateLeaseCommand) (*tenancyapp.LeaseResponse, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancyapp.LeaseResponse), args.Error(1)
}

func (m *MockLeaseService) Update(ctx context.Context, cmd tenancyapp.UpdateLeaseCommand) (*tenancyapp.LeaseResponse, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancyapp.LeaseResponse), args.Error(1)
}

func (m *MockLeaseService) Terminate(ctx context.Context, cmd tenancyapp.TerminateLeaseCommand) (*tenancyapp.LeaseResponse, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancyapp.LeaseResponse), args.Error(1)
}

func (m *MockLeaseService) Get(ctx context.Context, q tenancyapp.GetLeaseQuery) (*tenancyapp.LeaseResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancyapp.LeaseResponse), args.Error(1)
}

func (m *MockLeaseService) List(ctx context.Context, q tenancyapp.ListLeasesQuery) (shared.PagedList[tenancyapp.LeaseListItem], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(shared.PagedList[tenancyapp.LeaseListItem]), args.Error(1)
}

// MockExpenseService is a mock implementation of ExpenseService
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) Create(ctx context.Context, cmd expenseapp.CreateExpenseCommand) (*expenseapp.ExpenseResponse, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expenseapp.ExpenseResponse), args.Error(1)
}

func (m *MockExpenseService) Update(ctx context.Context, cmd expenseapp.UpdateExpenseCommand) (*expenseapp.ExpenseResponse, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expenseapp.ExpenseResponse), args.Error(1)
}

func (m *MockExpenseService) Delete(ctx context.Context, cmd expenseapp.DeleteExpenseCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *MockExpenseService) Get(ctx context.Context, q expenseapp.GetExpenseQuery) (*expenseapp.ExpenseResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expenseapp.ExpenseResponse), args.Error(1)
}

func (m *MockExpenseService) List(ctx context.Context, q expenseapp.ListExpensesQuery) (shared.PagedList[expenseapp.ExpenseListItem], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(shared.PagedList[expenseapp.ExpenseListItem]), args.Error(1)
}

func (m *MockExpenseService) UploadAttachment(ctx context.Context, cmd expenseapp.UploadAttachmentCommand) (*expenseapp.AttachmentResponse, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expenseapp.AttachmentResponse), args.Error(1)
}

func (m *MockExpenseService) ListAttachments(ctx context.Context, q expenseapp.ListAttachmentsQuery) ([]expenseapp.AttachmentResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]expenseapp.AttachmentResponse), args.Error(1)
}

func (m *MockExpenseService) DownloadAttachment(ctx context.Context, q expenseapp.DownloadAttachmentQuery) (*expenseapp.AttachmentContent, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expenseapp.AttachmentContent), args.Error(1)
}

func (m *MockExpenseService) DeleteAttachment(ctx context.Context, cmd expenseapp.DeleteAttachmentCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

// MockMoneyFlowService is a mock implementation of MoneyFlowService
type MockMoneyFlowService struct {
	mock.Mock
}

func (m *MockMoneyFlowService) Create(ctx context.Context, cmd moneyflowapp.CreateMoneyFlowCommand) (*moneyflowapp.MoneyFlowResponse, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*moneyflowapp.MoneyFlowResponse), args.Error(1)
}

func (m *MockMoneyFlowService) Update(ctx context.Context, cmd moneyflowapp.UpdateMoneyFlowCommand) (*moneyflowapp.MoneyFlowResponse, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*moneyflowapp.MoneyFlowResponse), args.Error(1)
}

func (m *MockMoneyFlowService) Delete(ctx context.Context, cmd moneyflowapp.DeleteMoneyFlowCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *MockMoneyFlowService) Get(ctx context.Context, q moneyflowapp.GetMoneyFlowQuery) (*moneyflowapp.MoneyFlowResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*moneyflowapp.MoneyFlowResponse), args.Error(1)
}

func (m *MockMoneyFlowService) List(ctx context.Context, q moneyflowapp.ListMoneyFlowsQuery) (shared.PagedList[moneyflowapp.MoneyFlowListItem], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(shared.PagedList[moneyflowapp.MoneyFlowListItem]), args.Error(1)
}

type recordedUploads struct {
	total int64
}

func (r *recordedUploads) AddUploadBytes(n int64) {
	r.total += n
}

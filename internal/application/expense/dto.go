package expense

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/application/pipeline"
	"github.com/propman/backend/internal/domain/expense"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

const unknownCategory = "Unknown"

// =============================================================================
// Categories
// =============================================================================

// GetCategoryQuery loads a single expense category
type GetCategoryQuery struct {
	pipeline.Query
	ID uuid.UUID
}

// RequestName implements pipeline.Request
func (GetCategoryQuery) RequestName() string { return "GetExpenseCategory" }

// ListCategoriesQuery pages through expense categories ordered by name
type ListCategoriesQuery struct {
	pipeline.Query
	shared.PageRequest
	IsActive *bool
}

// RequestName implements pipeline.Request
func (ListCategoriesQuery) RequestName() string { return "ListExpenseCategories" }

// CategoryResponse represents an expense category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
}

func toCategoryResponse(c expense.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Code:        c.Code,
		Description: c.Description,
		IsActive:    c.IsActive,
	}
}

// =============================================================================
// Expenses
// =============================================================================

// ExpenseFields are the attributes shared by create and update requests
type ExpenseFields struct {
	CategoryID  uuid.UUID       `json:"category_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Date        time.Time       `json:"date"`
	Vendor      *string         `json:"vendor"`
	Reference   *string         `json:"reference"`
	Notes       *string         `json:"notes"`
}

func (f ExpenseFields) details() expense.Details {
	return expense.Details{
		CategoryID:  f.CategoryID,
		Description: f.Description,
		Amount:      f.Amount,
		Currency:    valueobject.Currency(f.Currency),
		Date:        f.Date,
		Vendor:      f.Vendor,
		Reference:   f.Reference,
		Notes:       f.Notes,
	}
}

// CreateExpenseCommand records an expense against a property
type CreateExpenseCommand struct {
	pipeline.Command
	PropertyID uuid.UUID `json:"property_id"`
	ExpenseFields
}

// RequestName implements pipeline.Request
func (CreateExpenseCommand) RequestName() string { return "CreateExpense" }

// UpdateExpenseCommand replaces the details of an expense
type UpdateExpenseCommand struct {
	pipeline.Command
	ID uuid.UUID `json:"-"`
	ExpenseFields
}

// RequestName implements pipeline.Request
func (UpdateExpenseCommand) RequestName() string { return "UpdateExpense" }

// DeleteExpenseCommand removes an expense and its attachments
type DeleteExpenseCommand struct {
	pipeline.Command
	ID uuid.UUID
}

// RequestName implements pipeline.Request
func (DeleteExpenseCommand) RequestName() string { return "DeleteExpense" }

// GetExpenseQuery loads a single expense
type GetExpenseQuery struct {
	pipeline.Query
	ID uuid.UUID
}

// RequestName implements pipeline.Request
func (GetExpenseQuery) RequestName() string { return "GetExpense" }

// ListExpensesQuery pages through expenses, newest first
type ListExpensesQuery struct {
	pipeline.Query
	shared.PageRequest
	PropertyID *uuid.UUID
	CategoryID *uuid.UUID
	FromDate   *time.Time
	ToDate     *time.Time
}

// RequestName implements pipeline.Request
func (ListExpensesQuery) RequestName() string { return "ListExpenses" }

// ExpenseResponse is the full representation of an expense
type ExpenseResponse struct {
	ID           uuid.UUID       `json:"id"`
	PropertyID   uuid.UUID       `json:"property_id"`
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Date         time.Time       `json:"date"`
	Vendor       *string         `json:"vendor,omitempty"`
	Reference    *string         `json:"reference,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ExpenseListItem is the slim list representation of an expense
type ExpenseListItem struct {
	ID           uuid.UUID       `json:"id"`
	PropertyID   uuid.UUID       `json:"property_id"`
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Date         time.Time       `json:"date"`
	Vendor       *string         `json:"vendor,omitempty"`
}

func toExpenseResponse(e *expense.Expense, categoryName string) *ExpenseResponse {
	return &ExpenseResponse{
		ID:           e.ID,
		PropertyID:   e.PropertyID,
		CategoryID:   e.CategoryID,
		CategoryName: categoryName,
		Description:  e.Description,
		Amount:       e.Amount,
		Currency:     e.Currency.String(),
		Date:         e.Date,
		Vendor:       e.Vendor,
		Reference:    e.Reference,
		Notes:        e.Notes,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toExpenseListItem(e expense.Expense, categoryName string) ExpenseListItem {
	return ExpenseListItem{
		ID:           e.ID,
		PropertyID:   e.PropertyID,
		CategoryID:   e.CategoryID,
		CategoryName: categoryName,
		Description:  e.Description,
		Amount:       e.Amount,
		Currency:     e.Currency.String(),
		Date:         e.Date,
		Vendor:       e.Vendor,
	}
}

// =============================================================================
// Attachments
// =============================================================================

// UploadAttachmentCommand stores a receipt or invoice for an expense
type UploadAttachmentCommand struct {
	pipeline.Command
	ExpenseID   uuid.UUID
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// RequestName implements pipeline.Request
func (UploadAttachmentCommand) RequestName() string { return "UploadExpenseAttachment" }

// DeleteAttachmentCommand removes one attachment of an expense
type DeleteAttachmentCommand struct {
	pipeline.Command
	ExpenseID    uuid.UUID
	AttachmentID uuid.UUID
}

// RequestName implements pipeline.Request
func (DeleteAttachmentCommand) RequestName() string { return "DeleteExpenseAttachment" }

// ListAttachmentsQuery returns every attachment of an expense
type ListAttachmentsQuery struct {
	pipeline.Query
	ExpenseID uuid.UUID
}

// RequestName implements pipeline.Request
func (ListAttachmentsQuery) RequestName() string { return "ListExpenseAttachments" }

// DownloadAttachmentQuery opens the stored content of an attachment
type DownloadAttachmentQuery struct {
	pipeline.Query
	ExpenseID    uuid.UUID
	AttachmentID uuid.UUID
}

// RequestName implements pipeline.Request
func (DownloadAttachmentQuery) RequestName() string { return "DownloadExpenseAttachment" }

// AttachmentResponse represents attachment metadata
type AttachmentResponse struct {
	ID          uuid.UUID `json:"id"`
	ExpenseID   uuid.UUID `json:"expense_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// AttachmentContent is an open attachment stream; the caller closes Body
type AttachmentContent struct {
	AttachmentResponse
	Body io.ReadCloser
}

func toAttachmentResponse(a expense.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:          a.ID,
		ExpenseID:   a.ExpenseID,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		SizeBytes:   a.SizeBytes,
		UploadedAt:  a.UploadedAt,
	}
}

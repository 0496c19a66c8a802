package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/expense"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExpenseCategoryModel is the persistence model for the expense Category entity.
type ExpenseCategoryModel struct {
	BaseModel
	Name        string  `gorm:"type:varchar(100);not null"`
	Code        string  `gorm:"type:varchar(20);not null;uniqueIndex"`
	Description *string `gorm:"type:varchar(500)"`
	IsActive    bool    `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ExpenseCategoryModel) TableName() string {
	return "expense_categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *ExpenseCategoryModel) ToDomain() *expense.Category {
	return &expense.Category{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Code:        m.Code,
		Description: m.Description,
		IsActive:    m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *ExpenseCategoryModel) FromDomain(c *expense.Category) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Code = c.Code
	m.Description = c.Description
	m.IsActive = c.IsActive
}

// ExpenseCategoryModelFromDomain creates a new persistence model from a domain Category entity.
func ExpenseCategoryModelFromDomain(c *expense.Category) *ExpenseCategoryModel {
	m := &ExpenseCategoryModel{}
	m.FromDomain(c)
	return m
}

// ExpenseModel is the persistence model for the Expense domain entity.
type ExpenseModel struct {
	BaseModel
	PropertyID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency    string          `gorm:"type:char(3);not null"`
	Date        time.Time       `gorm:"column:expense_date;type:date;not null;index"`
	Vendor      *string         `gorm:"type:varchar(200)"`
	Reference   *string         `gorm:"type:varchar(100)"`
	Notes       *string         `gorm:"type:varchar(2000)"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *expense.Expense {
	return &expense.Expense{
		BaseEntity: m.BaseModel.ToDomain(),
		Details: expense.Details{
			CategoryID:  m.CategoryID,
			Description: m.Description,
			Amount:      m.Amount,
			Currency:    valueobject.Currency(m.Currency),
			Date:        m.Date,
			Vendor:      m.Vendor,
			Reference:   m.Reference,
			Notes:       m.Notes,
		},
		PropertyID: m.PropertyID,
	}
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *expense.Expense) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.PropertyID = e.PropertyID
	m.CategoryID = e.CategoryID
	m.Description = e.Description
	m.Amount = e.Amount
	m.Currency = e.Currency.String()
	m.Date = e.Date
	m.Vendor = e.Vendor
	m.Reference = e.Reference
	m.Notes = e.Notes
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense entity.
func ExpenseModelFromDomain(e *expense.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}

// ExpenseAttachmentModel is the persistence model for attachment metadata.
// The file body lives in object storage under StoragePath.
type ExpenseAttachmentModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	ExpenseID   uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName    string    `gorm:"type:varchar(255);not null"`
	ContentType string    `gorm:"type:varchar(100);not null"`
	SizeBytes   int64     `gorm:"type:bigint;not null"`
	StoragePath string    `gorm:"type:varchar(500);not null"`
	UploadedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ExpenseAttachmentModel) TableName() string {
	return "expense_attachments"
}

// ToDomain converts the persistence model to a domain Attachment.
func (m *ExpenseAttachmentModel) ToDomain() *expense.Attachment {
	return &expense.Attachment{
		ID:          m.ID,
		ExpenseID:   m.ExpenseID,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
		StoragePath: m.StoragePath,
		UploadedAt:  m.UploadedAt,
	}
}

// ExpenseAttachmentModelFromDomain creates a new persistence model from a domain Attachment.
func ExpenseAttachmentModelFromDomain(a *expense.Attachment) *ExpenseAttachmentModel {
	return &ExpenseAttachmentModel{
		ID:          a.ID,
		ExpenseID:   a.ExpenseID,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		SizeBytes:   a.SizeBytes,
		StoragePath: a.StoragePath,
		UploadedAt:  a.UploadedAt,
	}
}

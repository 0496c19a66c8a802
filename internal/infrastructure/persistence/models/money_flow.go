package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/moneyflow"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// MoneyFlowModel is the persistence model for the MoneyFlow domain entity.
type MoneyFlowModel struct {
	BaseModel
	PropertyID        uuid.UUID          `gorm:"type:uuid;not null;index"`
	Type              moneyflow.FlowType `gorm:"column:flow_type;type:smallint;not null"`
	Amount            decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	Currency          string             `gorm:"type:char(3);not null"`
	Date              time.Time          `gorm:"column:flow_date;type:date;not null;index"`
	Description       string             `gorm:"type:varchar(500);not null"`
	ExpenseCategoryID *uuid.UUID         `gorm:"type:uuid;index"`
	IncomeSource      *string            `gorm:"type:varchar(255)"`
	TenantID          *uuid.UUID         `gorm:"type:uuid;index"`
	LeaseID           *uuid.UUID         `gorm:"type:uuid"`
	Reference         *string            `gorm:"type:varchar(100)"`
	Notes             *string            `gorm:"type:varchar(2000)"`
}

// TableName returns the table name for GORM
func (MoneyFlowModel) TableName() string {
	return "money_flows"
}

// ToDomain converts the persistence model to a domain MoneyFlow entity.
func (m *MoneyFlowModel) ToDomain() *moneyflow.MoneyFlow {
	return &moneyflow.MoneyFlow{
		BaseEntity: m.BaseModel.ToDomain(),
		Details: moneyflow.Details{
			Amount:            m.Amount,
			Currency:          valueobject.Currency(m.Currency),
			Date:              m.Date,
			Description:       m.Description,
			ExpenseCategoryID: m.ExpenseCategoryID,
			IncomeSource:      m.IncomeSource,
			TenantID:          m.TenantID,
			LeaseID:           m.LeaseID,
			Reference:         m.Reference,
			Notes:             m.Notes,
		},
		PropertyID: m.PropertyID,
		Type:       m.Type,
	}
}

// FromDomain populates the persistence model from a domain MoneyFlow entity.
func (m *MoneyFlowModel) FromDomain(f *moneyflow.MoneyFlow) {
	m.FromDomainBaseEntity(f.BaseEntity)
	m.PropertyID = f.PropertyID
	m.Type = f.Type
	m.Amount = f.Amount
	m.Currency = f.Currency.String()
	m.Date = f.Date
	m.Description = f.Description
	m.ExpenseCategoryID = f.ExpenseCategoryID
	m.IncomeSource = f.IncomeSource
	m.TenantID = f.TenantID
	m.LeaseID = f.LeaseID
	m.Reference = f.Reference
	m.Notes = f.Notes
}

// MoneyFlowModelFromDomain creates a new persistence model from a domain MoneyFlow entity.
func MoneyFlowModelFromDomain(f *moneyflow.MoneyFlow) *MoneyFlowModel {
	m := &MoneyFlowModel{}
	m.FromDomain(f)
	return m
}

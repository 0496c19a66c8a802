package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/propman/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
)

// TenantModel is the persistence model for the Tenant domain entity.
type TenantModel struct {
	BaseModel
	FirstName        string  `gorm:"type:varchar(100);not null"`
	LastName         string  `gorm:"type:varchar(100);not null;index"`
	Email            string  `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone            *string `gorm:"type:varchar(20)"`
	EmergencyContact *string `gorm:"type:varchar(200)"`
	EmergencyPhone   *string `gorm:"type:varchar(20)"`
	Notes            *string `gorm:"type:varchar(2000)"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity.
func (m *TenantModel) ToDomain() *tenancy.Tenant {
	return &tenancy.Tenant{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantDetails: tenancy.TenantDetails{
			FirstName:        m.FirstName,
			LastName:         m.LastName,
			Email:            m.Email,
			Phone:            m.Phone,
			EmergencyContact: m.EmergencyContact,
			EmergencyPhone:   m.EmergencyPhone,
			Notes:            m.Notes,
		},
	}
}

// FromDomain populates the persistence model from a domain Tenant entity.
func (m *TenantModel) FromDomain(t *tenancy.Tenant) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.FirstName = t.FirstName
	m.LastName = t.LastName
	m.Email = t.Email
	m.Phone = t.Phone
	m.EmergencyContact = t.EmergencyContact
	m.EmergencyPhone = t.EmergencyPhone
	m.Notes = t.Notes
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant entity.
func TenantModelFromDomain(t *tenancy.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// LeaseModel is the persistence model for the Lease domain entity.
type LeaseModel struct {
	BaseModel
	PropertyID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	TenantID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	StartDate      time.Time           `gorm:"type:date;not null"`
	EndDate        *time.Time          `gorm:"type:date"`
	MonthlyRent    decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Currency       string              `gorm:"type:char(3);not null"`
	DepositAmount  *decimal.Decimal    `gorm:"type:decimal(18,2)"`
	RentDayOfMonth int                 `gorm:"type:smallint;not null"`
	Status         tenancy.LeaseStatus `gorm:"type:smallint;not null;default:1;index"`
	Notes          *string             `gorm:"type:varchar(2000)"`
}

// TableName returns the table name for GORM
func (LeaseModel) TableName() string {
	return "leases"
}

// ToDomain converts the persistence model to a domain Lease entity.
func (m *LeaseModel) ToDomain() *tenancy.Lease {
	return &tenancy.Lease{
		BaseEntity: m.BaseModel.ToDomain(),
		LeaseTerms: tenancy.LeaseTerms{
			StartDate:      m.StartDate,
			EndDate:        m.EndDate,
			MonthlyRent:    m.MonthlyRent,
			Currency:       valueobject.Currency(m.Currency),
			DepositAmount:  m.DepositAmount,
			RentDayOfMonth: m.RentDayOfMonth,
			Notes:          m.Notes,
		},
		PropertyID: m.PropertyID,
		TenantID:   m.TenantID,
		Status:     m.Status,
	}
}

// FromDomain populates the persistence model from a domain Lease entity.
func (m *LeaseModel) FromDomain(l *tenancy.Lease) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.PropertyID = l.PropertyID
	m.TenantID = l.TenantID
	m.StartDate = l.StartDate
	m.EndDate = l.EndDate
	m.MonthlyRent = l.MonthlyRent
	m.Currency = l.Currency.String()
	m.DepositAmount = l.DepositAmount
	m.RentDayOfMonth = l.RentDayOfMonth
	m.Status = l.Status
	m.Notes = l.Notes
}

// LeaseModelFromDomain creates a new persistence model from a domain Lease entity.
func LeaseModelFromDomain(l *tenancy.Lease) *LeaseModel {
	m := &LeaseModel{}
	m.FromDomain(l)
	return m
}

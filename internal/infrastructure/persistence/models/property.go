package models

import (
	"time"

	"github.com/propman/backend/internal/domain/property"
	"github.com/shopspring/decimal"
)

// PropertyModel is the persistence model for the Property domain entity.
type PropertyModel struct {
	BaseModel
	Name          string                  `gorm:"type:varchar(200);not null;index"`
	AddressLine1  string                  `gorm:"column:address_line1;type:varchar(200);not null"`
	AddressLine2  *string                 `gorm:"column:address_line2;type:varchar(200)"`
	City          string                  `gorm:"type:varchar(100);not null"`
	County        string                  `gorm:"type:varchar(100);not null"`
	Postcode      string                  `gorm:"type:varchar(10);not null"`
	PropertyType  property.PropertyType   `gorm:"column:property_type;type:smallint;not null"`
	Bedrooms      int                     `gorm:"type:integer;not null;default:0"`
	Bathrooms     int                     `gorm:"type:integer;not null;default:0"`
	PurchasePrice *decimal.Decimal        `gorm:"type:decimal(18,2)"`
	PurchaseDate  *time.Time              `gorm:"type:date"`
	Description   *string                 `gorm:"type:varchar(2000)"`
	Status        property.PropertyStatus `gorm:"type:smallint;not null;default:1;index"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property entity.
func (m *PropertyModel) ToDomain() *property.Property {
	return &property.Property{
		BaseEntity: m.BaseModel.ToDomain(),
		Details: property.Details{
			Name:          m.Name,
			AddressLine1:  m.AddressLine1,
			AddressLine2:  m.AddressLine2,
			City:          m.City,
			County:        m.County,
			Postcode:      m.Postcode,
			Type:          m.PropertyType,
			Bedrooms:      m.Bedrooms,
			Bathrooms:     m.Bathrooms,
			PurchasePrice: m.PurchasePrice,
			PurchaseDate:  m.PurchaseDate,
			Description:   m.Description,
		},
		Status: m.Status,
	}
}

// FromDomain populates the persistence model from a domain Property entity.
func (m *PropertyModel) FromDomain(p *property.Property) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.AddressLine1 = p.AddressLine1
	m.AddressLine2 = p.AddressLine2
	m.City = p.City
	m.County = p.County
	m.Postcode = p.Postcode
	m.PropertyType = p.Type
	m.Bedrooms = p.Bedrooms
	m.Bathrooms = p.Bathrooms
	m.PurchasePrice = p.PurchasePrice
	m.PurchaseDate = p.PurchaseDate
	m.Description = p.Description
	m.Status = p.Status
}

// PropertyModelFromDomain creates a new persistence model from a domain Property entity.
func PropertyModelFromDomain(p *property.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

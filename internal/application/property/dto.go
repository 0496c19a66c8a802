package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/application/pipeline"
	"github.com/propman/backend/internal/domain/property"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PropertyFields are the attributes shared by create and update requests
type PropertyFields struct {
	Name          string           `json:"name"`
	AddressLine1  string           `json:"address_line1"`
	AddressLine2  *string          `json:"address_line2"`
	City          string           `json:"city"`
	County        string           `json:"county"`
	Postcode      string           `json:"postcode"`
	Type          int              `json:"type"`
	Bedrooms      int              `json:"bedrooms"`
	Bathrooms     int              `json:"bathrooms"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	PurchaseDate  *time.Time       `json:"purchase_date"`
	Description   *string          `json:"description"`
}

func (f PropertyFields) details() property.Details {
	return property.Details{
		Name:          f.Name,
		AddressLine1:  f.AddressLine1,
		AddressLine2:  f.AddressLine2,
		City:          f.City,
		County:        f.County,
		Postcode:      f.Postcode,
		Type:          property.PropertyType(f.Type),
		Bedrooms:      f.Bedrooms,
		Bathrooms:     f.Bathrooms,
		PurchasePrice: f.PurchasePrice,
		PurchaseDate:  f.PurchaseDate,
		Description:   f.Description,
	}
}

// CreatePropertyCommand adds a property to the portfolio
type CreatePropertyCommand struct {
	pipeline.Command
	PropertyFields
}

// RequestName implements pipeline.Request
func (CreatePropertyCommand) RequestName() string { return "CreateProperty" }

// UpdatePropertyCommand replaces the details of a property
type UpdatePropertyCommand struct {
	pipeline.Command
	ID uuid.UUID `json:"-"`
	PropertyFields
}

// RequestName implements pipeline.Request
func (UpdatePropertyCommand) RequestName() string { return "UpdateProperty" }

// ArchivePropertyCommand removes a property from the active portfolio
type ArchivePropertyCommand struct {
	pipeline.Command
	ID uuid.UUID
}

// RequestName implements pipeline.Request
func (ArchivePropertyCommand) RequestName() string { return "ArchiveProperty" }

// ActivatePropertyCommand returns an archived property to the portfolio
type ActivatePropertyCommand struct {
	pipeline.Command
	ID uuid.UUID
}

// RequestName implements pipeline.Request
func (ActivatePropertyCommand) RequestName() string { return "ActivateProperty" }

// GetPropertyQuery loads a single property
type GetPropertyQuery struct {
	pipeline.Query
	ID uuid.UUID
}

// RequestName implements pipeline.Request
func (GetPropertyQuery) RequestName() string { return "GetProperty" }

// ListPropertiesQuery pages through properties ordered by name
type ListPropertiesQuery struct {
	pipeline.Query
	shared.PageRequest
	Status     *int
	Type       *int
	SearchTerm string
}

// RequestName implements pipeline.Request
func (ListPropertiesQuery) RequestName() string { return "ListProperties" }

// PropertyResponse is the full representation of a property
type PropertyResponse struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	AddressLine1  string           `json:"address_line1"`
	AddressLine2  *string          `json:"address_line2,omitempty"`
	City          string           `json:"city"`
	County        string           `json:"county"`
	Postcode      string           `json:"postcode"`
	Type          int              `json:"type"`
	TypeName      string           `json:"type_name"`
	Status        int              `json:"status"`
	StatusName    string           `json:"status_name"`
	Bedrooms      int              `json:"bedrooms"`
	Bathrooms     int              `json:"bathrooms"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	PurchaseDate  *time.Time       `json:"purchase_date,omitempty"`
	Description   *string          `json:"description,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// PropertyListItem is the slim list representation of a property
type PropertyListItem struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	City       string    `json:"city"`
	Postcode   string    `json:"postcode"`
	Type       int       `json:"type"`
	TypeName   string    `json:"type_name"`
	Status     int       `json:"status"`
	StatusName string    `json:"status_name"`
	Bedrooms   int       `json:"bedrooms"`
	Bathrooms  int       `json:"bathrooms"`
}

func toPropertyResponse(p *property.Property) *PropertyResponse {
	return &PropertyResponse{
		ID:            p.ID,
		Name:          p.Name,
		AddressLine1:  p.AddressLine1,
		AddressLine2:  p.AddressLine2,
		City:          p.City,
		County:        p.County,
		Postcode:      p.Postcode,
		Type:          int(p.Type),
		TypeName:      p.Type.String(),
		Status:        int(p.Status),
		StatusName:    p.Status.String(),
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		PurchasePrice: p.PurchasePrice,
		PurchaseDate:  p.PurchaseDate,
		Description:   p.Description,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toPropertyListItem(p property.Property) PropertyListItem {
	return PropertyListItem{
		ID:         p.ID,
		Name:       p.Name,
		City:       p.City,
		Postcode:   p.Postcode,
		Type:       int(p.Type),
		TypeName:   p.Type.String(),
		Status:     int(p.Status),
		StatusName: p.Status.String(),
		Bedrooms:   p.Bedrooms,
		Bathrooms:  p.Bathrooms,
	}
}

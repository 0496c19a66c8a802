package property

import (
	"strings"
	"time"

	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PropertyType is the kind of dwelling
type PropertyType int

const (
	PropertyTypeDetached     PropertyType = 1
	PropertyTypeSemiDetached PropertyType = 2
	PropertyTypeTerraced     PropertyType = 3
	PropertyTypeFlat         PropertyType = 4
	PropertyTypeApartment    PropertyType = 5
	PropertyTypeBungalow     PropertyType = 6
	PropertyTypeCottage      PropertyType = 7
	PropertyTypeHouseShare   PropertyType = 8
)

// IsValid checks if the type is a defined PropertyType
func (t PropertyType) IsValid() bool {
	return t >= PropertyTypeDetached && t <= PropertyTypeHouseShare
}

// String returns the name of the PropertyType
func (t PropertyType) String() string {
	switch t {
	case PropertyTypeDetached:
		return "Detached"
	case PropertyTypeSemiDetached:
		return "SemiDetached"
	case PropertyTypeTerraced:
		return "Terraced"
	case PropertyTypeFlat:
		return "Flat"
	case PropertyTypeApartment:
		return "Apartment"
	case PropertyTypeBungalow:
		return "Bungalow"
	case PropertyTypeCottage:
		return "Cottage"
	case PropertyTypeHouseShare:
		return "HouseShare"
	default:
		return "Unknown"
	}
}

// PropertyStatus represents whether a property is in the active portfolio
type PropertyStatus int

const (
	PropertyStatusActive   PropertyStatus = 1
	PropertyStatusArchived PropertyStatus = 2
)

// IsValid checks if the status is a defined PropertyStatus
func (s PropertyStatus) IsValid() bool {
	return s == PropertyStatusActive || s == PropertyStatusArchived
}

// String returns the name of the PropertyStatus
func (s PropertyStatus) String() string {
	switch s {
	case PropertyStatusActive:
		return "Active"
	case PropertyStatusArchived:
		return "Archived"
	default:
		return "Unknown"
	}
}

// Details holds the user-editable attributes of a property
type Details struct {
	Name          string
	AddressLine1  string
	AddressLine2  *string
	City          string
	County        string
	Postcode      string
	Type          PropertyType
	Bedrooms      int
	Bathrooms     int
	PurchasePrice *decimal.Decimal
	PurchaseDate  *time.Time
	Description   *string
}

// Property is a rental dwelling in the portfolio
type Property struct {
	shared.BaseEntity
	Details
	Status PropertyStatus
}

// NewProperty creates an active property. The postcode is stored normalized.
func NewProperty(d Details, now time.Time) (*Property, error) {
	d, err := normalizeDetails(d)
	if err != nil {
		return nil, err
	}
	return &Property{
		BaseEntity: shared.NewBaseEntity(now),
		Details:    d,
		Status:     PropertyStatusActive,
	}, nil
}

// Update returns a copy of the property carrying the new details
func (p Property) Update(d Details, now time.Time) (Property, error) {
	d, err := normalizeDetails(d)
	if err != nil {
		return p, err
	}
	p.Details = d
	p.Touch(now)
	return p, nil
}

// Archive returns a copy of the property removed from the active portfolio
func (p Property) Archive(now time.Time) Property {
	p.Status = PropertyStatusArchived
	p.Touch(now)
	return p
}

// Activate returns a copy of the property back in the active portfolio
func (p Property) Activate(now time.Time) Property {
	p.Status = PropertyStatusActive
	p.Touch(now)
	return p
}

// IsArchived reports whether the property is archived
func (p Property) IsArchived() bool {
	return p.Status == PropertyStatusArchived
}

func normalizeDetails(d Details) (Details, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return d, shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}
	if !d.Type.IsValid() {
		return d, shared.NewDomainError("INVALID_PROPERTY_TYPE", "Property type is not valid")
	}
	if d.Bedrooms < 0 || d.Bathrooms < 0 {
		return d, shared.NewDomainError("INVALID_ROOM_COUNT", "Room counts cannot be negative")
	}
	if d.PurchasePrice != nil && !d.PurchasePrice.IsPositive() {
		return d, shared.NewDomainError("INVALID_PURCHASE_PRICE", "Purchase price must be positive")
	}
	d.Postcode = valueobject.NormalizePostcode(d.Postcode)
	if d.Postcode == "" {
		return d, shared.NewDomainError("INVALID_POSTCODE", "Postcode cannot be empty")
	}
	return d, nil
}

// Filter narrows a property list
type Filter struct {
	shared.PageRequest
	Status *PropertyStatus
	Type   *PropertyType
	Search string
}

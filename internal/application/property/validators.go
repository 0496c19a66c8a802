package property

import (
	"strings"

	"github.com/propman/backend/internal/application/validation"
	"github.com/propman/backend/internal/domain/property"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// RegisterValidators adds the property rule sets to the registry
func RegisterValidators(r *validation.Registry, clock shared.Clock) {
	validation.Register(r, func(cmd CreatePropertyCommand, errs *validation.Errors) {
		validateFields(cmd.PropertyFields, clock, errs)
	})
	validation.Register(r, func(cmd UpdatePropertyCommand, errs *validation.Errors) {
		errs.RequiredID("id", cmd.ID)
		validateFields(cmd.PropertyFields, clock, errs)
	})
	validation.Register(r, func(cmd ArchivePropertyCommand, errs *validation.Errors) {
		errs.RequiredID("id", cmd.ID)
	})
	validation.Register(r, func(cmd ActivatePropertyCommand, errs *validation.Errors) {
		errs.RequiredID("id", cmd.ID)
	})
	validation.Register(r, func(q ListPropertiesQuery, errs *validation.Errors) {
		validation.Page(q.PageRequest, errs)
		errs.MaxLength("search_term", q.SearchTerm, validation.MaxSearchTermLength)
		if q.Status != nil {
			errs.Check(property.PropertyStatus(*q.Status).IsValid(), "status", "Status must be a valid property status")
		}
		if q.Type != nil {
			errs.Check(property.PropertyType(*q.Type).IsValid(), "type", "Type must be a valid property type")
		}
	})
}

func validateFields(f PropertyFields, clock shared.Clock, errs *validation.Errors) {
	errs.Required("name", f.Name)
	errs.MaxLength("name", f.Name, 200)

	errs.Required("address_line1", f.AddressLine1)
	errs.MaxLength("address_line1", f.AddressLine1, 200)
	errs.OptionalMaxLength("address_line2", f.AddressLine2, 200)

	errs.Required("city", f.City)
	errs.MaxLength("city", f.City, 100)

	errs.Required("county", f.County)
	errs.MaxLength("county", f.County, 100)

	if strings.TrimSpace(f.Postcode) == "" {
		errs.Required("postcode", f.Postcode)
	} else {
		errs.MaxLength("postcode", f.Postcode, valueobject.MaxPostcodeLength)
		errs.Check(valueobject.IsValidUKPostcode(f.Postcode), "postcode", "Postcode must be a valid UK postcode")
	}

	errs.Check(property.PropertyType(f.Type).IsValid(), "type", "Type must be a valid property type")
	errs.IntBetween("bedrooms", f.Bedrooms, 0, 20)
	errs.IntBetween("bathrooms", f.Bathrooms, 0, 10)

	if f.PurchasePrice != nil {
		errs.GreaterThan("purchase_price", *f.PurchasePrice, decimal.Zero)
	}
	if f.PurchaseDate != nil {
		errs.NotAfter("purchase_date", *f.PurchaseDate, clock.Now(), "Purchase date cannot be in the future")
	}
	errs.OptionalMaxLength("description", f.Description, 2000)
}

package report

import (
	"strings"

	"github.com/propman/backend/internal/application/validation"
	"github.com/propman/backend/internal/domain/shared/valueobject"
)

// RegisterValidators adds the report rule sets to the registry
func RegisterValidators(r *validation.Registry) {
	validation.Register(r, func(q GetPropertySummaryQuery, errs *validation.Errors) {
		errs.RequiredID("property_id", q.PropertyID)
		if strings.TrimSpace(q.Currency) != "" {
			errs.Check(valueobject.NormalizeCurrency(q.Currency).IsSupported(), "currency",
				"Currency must be one of GBP, CHF, EUR, USD")
		}
		errs.DateRange("date_to", q.DateFrom, q.DateTo)
	})
}

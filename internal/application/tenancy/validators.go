package tenancy

import (
	"regexp"
	"strings"

	"github.com/propman/backend/internal/application/validation"
	"github.com/propman/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
)

var (
	ukMobilePattern = regexp.MustCompile(`^(\+44\s?7\d{3}|\(?07\d{3}\)?)\s?\d{3}\s?\d{3}$`)
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

	maxMonthlyRent = decimal.NewFromInt(100000)
)

// RegisterValidators adds the tenant and lease rule sets to the registry
func RegisterValidators(r *validation.Registry) {
	validation.Register(r, func(cmd CreateTenantCommand, errs *validation.Errors) {
		validateTenant(cmd.TenantFields, errs)
	})
	validation.Register(r, func(cmd UpdateTenantCommand, errs *validation.Errors) {
		errs.RequiredID("id", cmd.ID)
		validateTenant(cmd.TenantFields, errs)
	})
	validation.Register(r, func(q ListTenantsQuery, errs *validation.Errors) {
		validation.Page(q.PageRequest, errs)
		errs.MaxLength("search_term", q.SearchTerm, validation.MaxSearchTermLength)
	})

	validation.Register(r, func(cmd CreateLeaseCommand, errs *validation.Errors) {
		errs.RequiredID("property_id", cmd.PropertyID)
		errs.RequiredID("tenant_id", cmd.TenantID)
		validateLease(cmd.LeaseFields, errs)
	})
	validation.Register(r, func(cmd UpdateLeaseCommand, errs *validation.Errors) {
		errs.RequiredID("id", cmd.ID)
		validateLease(cmd.LeaseFields, errs)
	})
	validation.Register(r, func(cmd TerminateLeaseCommand, errs *validation.Errors) {
		errs.RequiredID("id", cmd.ID)
		errs.RequiredDate("end_date", cmd.EndDate)
	})
	validation.Register(r, func(q ListLeasesQuery, errs *validation.Errors) {
		validation.Page(q.PageRequest, errs)
		if q.Status != nil {
			errs.Check(tenancy.LeaseStatus(*q.Status).IsValid(), "status", "Status must be a valid lease status")
		}
	})
}

func validateTenant(f TenantFields, errs *validation.Errors) {
	errs.Required("first_name", f.FirstName)
	errs.MaxLength("first_name", f.FirstName, 100)
	errs.Required("last_name", f.LastName)
	errs.MaxLength("last_name", f.LastName, 100)

	if strings.TrimSpace(f.Email) == "" {
		errs.Required("email", f.Email)
	} else {
		errs.Email("email", strings.TrimSpace(f.Email))
		errs.MaxLength("email", f.Email, 255)
	}

	if f.Phone != nil && strings.TrimSpace(*f.Phone) != "" {
		errs.MaxLength("phone", *f.Phone, 20)
		errs.Matches("phone", *f.Phone, ukMobilePattern, "Phone must be a valid UK mobile number")
	}
	errs.OptionalMaxLength("emergency_contact", f.EmergencyContact, 200)
	errs.OptionalMaxLength("emergency_phone", f.EmergencyPhone, 20)
	errs.OptionalMaxLength("notes", f.Notes, 2000)
}

func validateLease(f LeaseFields, errs *validation.Errors) {
	errs.RequiredDate("start_date", f.StartDate)
	if f.EndDate != nil && !f.StartDate.IsZero() {
		errs.Check(f.EndDate.After(f.StartDate), "end_date", "End date must be after start date")
	}

	errs.GreaterThan("monthly_rent", f.MonthlyRent, decimal.Zero)
	errs.LessThan("monthly_rent", f.MonthlyRent, maxMonthlyRent)

	errs.ExactLength("currency", f.Currency, 3)
	errs.Matches("currency", f.Currency, currencyPattern, "Currency must be a three letter ISO code")

	if f.DepositAmount != nil {
		errs.GreaterThanOrEqual("deposit_amount", *f.DepositAmount, decimal.Zero)
	}
	errs.IntBetween("rent_day_of_month", f.RentDayOfMonth, tenancy.MinRentDay, tenancy.MaxRentDay)
	errs.OptionalMaxLength("notes", f.Notes, 2000)
}

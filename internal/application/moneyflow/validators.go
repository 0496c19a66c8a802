package moneyflow

import (
	"strings"

	"github.com/propman/backend/internal/application/validation"
	"github.com/propman/backend/internal/domain/moneyflow"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

var maxFlowAmount = decimal.New(1, 9)

// RegisterValidators adds the money flow rule sets to the registry
func RegisterValidators(r *validation.Registry, clock shared.Clock) {
	validation.Register(r, func(cmd CreateMoneyFlowCommand, errs *validation.Errors) {
		errs.RequiredID("property_id", cmd.PropertyID)
		errs.Check(moneyflow.FlowType(cmd.Type).IsValid(), "type", "Type must be Income (1) or Expense (2)")
		validateFields(cmd.MoneyFlowFields, clock, errs)
	})
	validation.Register(r, func(cmd UpdateMoneyFlowCommand, errs *validation.Errors) {
		errs.RequiredID("id", cmd.ID)
		validateFields(cmd.MoneyFlowFields, clock, errs)
	})
	validation.Register(r, func(cmd DeleteMoneyFlowCommand, errs *validation.Errors) {
		errs.RequiredID("id", cmd.ID)
	})
	validation.Register(r, func(q ListMoneyFlowsQuery, errs *validation.Errors) {
		validation.Page(q.PageRequest, errs)
		errs.DateRange("date_to", q.DateFrom, q.DateTo)
		errs.MaxLength("search_term", q.SearchTerm, validation.MaxSearchTermLength)
		if q.Type != nil {
			errs.Check(moneyflow.FlowType(*q.Type).IsValid(), "type", "Type must be Income (1) or Expense (2)")
		}
	})
}

func validateFields(f MoneyFlowFields, clock shared.Clock, errs *validation.Errors) {
	errs.GreaterThan("amount", f.Amount, decimal.Zero)
	errs.LessThan("amount", f.Amount, maxFlowAmount)

	errs.Check(valueobject.Currency(f.Currency).IsSupported(), "currency", "Currency must be one of "+supportedCurrencies())

	errs.RequiredDate("date", f.Date)
	errs.NotAfter("date", shared.Today(f.Date), shared.Today(clock.Now()), "Date cannot be in the future")

	errs.LengthBetween("description", strings.TrimSpace(f.Description), 3, 500)

	errs.OptionalMaxLength("income_source", f.IncomeSource, 255)
	if f.Reference != nil && *f.Reference != "" {
		errs.MaxLength("reference", *f.Reference, 100)
	}
	if f.Notes != nil && *f.Notes != "" {
		errs.MaxLength("notes", *f.Notes, 2000)
	}
}

func supportedCurrencies() string {
	codes := make([]string, 0, len(valueobject.SupportedCurrencies()))
	for _, c := range valueobject.SupportedCurrencies() {
		codes = append(codes, c.String())
	}
	return strings.Join(codes, ", ")
}

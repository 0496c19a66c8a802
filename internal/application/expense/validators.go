package expense

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/propman/backend/internal/application/validation"
	"github.com/propman/backend/internal/domain/expense"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var (
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

	maxExpenseAmount = decimal.New(1, 9)
)

// expenseDateSlack tolerates clients a timezone ahead of the server
const expenseDateSlack = 24 * time.Hour

// RegisterValidators adds the category, expense and attachment rule sets to the registry
func RegisterValidators(r *validation.Registry, clock shared.Clock, settings AttachmentSettings) {
	validation.Register(r, func(q ListCategoriesQuery, errs *validation.Errors) {
		validation.Page(q.PageRequest, errs)
	})

	validation.Register(r, func(cmd CreateExpenseCommand, errs *validation.Errors) {
		errs.RequiredID("property_id", cmd.PropertyID)
		validateExpense(cmd.ExpenseFields, clock, errs)
	})
	validation.Register(r, func(cmd UpdateExpenseCommand, errs *validation.Errors) {
		errs.RequiredID("id", cmd.ID)
		validateExpense(cmd.ExpenseFields, clock, errs)
	})
	validation.Register(r, func(cmd DeleteExpenseCommand, errs *validation.Errors) {
		errs.RequiredID("id", cmd.ID)
	})
	validation.Register(r, func(q ListExpensesQuery, errs *validation.Errors) {
		validation.Page(q.PageRequest, errs)
		errs.DateRange("to_date", q.FromDate, q.ToDate)
	})

	validation.Register(r, func(cmd UploadAttachmentCommand, errs *validation.Errors) {
		errs.RequiredID("expense_id", cmd.ExpenseID)
		errs.Required("file_name", cmd.FileName)
		errs.MaxLength("file_name", cmd.FileName, expense.MaxFileNameLength)
		errs.MaxLength("content_type", cmd.ContentType, expense.MaxContentTypeLength)
		errs.Check(cmd.Size > 0, "file", "File is empty")
		errs.Check(cmd.Size <= settings.MaxBytes(), "file",
			fmt.Sprintf("File must not exceed %d MB", settings.MaxFileSizeMB))
		if strings.TrimSpace(cmd.FileName) != "" {
			errs.Check(settings.Allows(cmd.FileName), "file_name",
				"File type must be one of "+strings.Join(settings.AllowedExtensions, ", "))
		}
	})
	validation.Register(r, func(cmd DeleteAttachmentCommand, errs *validation.Errors) {
		errs.RequiredID("expense_id", cmd.ExpenseID)
		errs.RequiredID("attachment_id", cmd.AttachmentID)
	})
}

func validateExpense(f ExpenseFields, clock shared.Clock, errs *validation.Errors) {
	errs.RequiredID("category_id", f.CategoryID)

	errs.Required("description", f.Description)
	errs.MaxLength("description", f.Description, 500)

	errs.GreaterThan("amount", f.Amount, decimal.Zero)
	errs.LessThan("amount", f.Amount, maxExpenseAmount)

	errs.ExactLength("currency", f.Currency, 3)
	errs.Matches("currency", f.Currency, currencyPattern, "Currency must be a three letter ISO code")

	errs.RequiredDate("date", f.Date)
	errs.NotAfter("date", shared.Today(f.Date), shared.Today(clock.Now()).Add(expenseDateSlack), "Date cannot be in the future")

	errs.OptionalMaxLength("vendor", f.Vendor, 200)
	errs.OptionalMaxLength("reference", f.Reference, 100)
	errs.OptionalMaxLength("notes", f.Notes, 2000)
}

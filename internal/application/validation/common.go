package validation

import "github.com/propman/backend/internal/domain/shared"

// MaxSearchTermLength bounds free-text search input on list queries
const MaxSearchTermLength = 200

// Page checks the pagination bounds of a list query
func Page(p shared.PageRequest, errs *Errors) {
	errs.Check(p.PageNumber >= 1, "page_number", "Page number must be at least 1")
	errs.IntBetween("page_size", p.PageSize, 1, shared.MaxPageSize)
}

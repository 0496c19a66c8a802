package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
)

// dateLayout is the query-string date format; RFC 3339 timestamps are also accepted
const dateLayout = "2006-01-02"

// queryParams reads optional filters from the query string and collects
// every malformed value as a field error.
type queryParams struct {
	c      *gin.Context
	fields map[string][]string
}

func newQueryParams(c *gin.Context) *queryParams {
	return &queryParams{c: c, fields: map[string][]string{}}
}

func (q *queryParams) raw(name string) (string, bool) {
	v, ok := q.c.GetQuery(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (q *queryParams) fail(name, message string) {
	q.fields[name] = append(q.fields[name], message)
}

func (q *queryParams) String(name string) string {
	v, _ := q.raw(name)
	return v
}

func (q *queryParams) UUID(name string) *uuid.UUID {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		q.fail(name, "Invalid UUID format")
		return nil
	}
	return &id
}

func (q *queryParams) Int(name string) *int {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.fail(name, "Must be a whole number")
		return nil
	}
	return &n
}

func (q *queryParams) Bool(name string) *bool {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.fail(name, "Must be true or false")
		return nil
	}
	return &b
}

func (q *queryParams) Date(name string) *time.Time {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	if t, err := time.Parse(dateLayout, v); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t
	}
	q.fail(name, "Must be a date in YYYY-MM-DD format")
	return nil
}

// Page reads page_number and page_size, defaulting to page 1 of 20. Bounds
// are enforced by the request validators.
func (q *queryParams) Page() shared.PageRequest {
	var p shared.PageRequest
	if n := q.Int("page_number"); n != nil {
		p.PageNumber = *n
	}
	if n := q.Int("page_size"); n != nil {
		p.PageSize = *n
	}
	return p.WithDefaults()
}

// Err returns the collected field errors, if any
func (q *queryParams) Err() error {
	if len(q.fields) == 0 {
		return nil
	}
	return shared.NewValidationError(q.fields)
}

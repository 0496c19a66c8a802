// Package validation holds the per-request rule sets evaluated by the request pipeline.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var formatValidator = validator.New()

// Errors collects every rule violation of one request. Checks never stop
// at the first failure.
type Errors struct {
	fields map[string][]string
}

// NewErrors creates an empty collector
func NewErrors() *Errors {
	return &Errors{fields: make(map[string][]string)}
}

// Add records a violation on field
func (e *Errors) Add(field, message string) {
	e.fields[field] = append(e.fields[field], message)
}

// Check records message on field unless ok
func (e *Errors) Check(ok bool, field, message string) {
	if !ok {
		e.Add(field, message)
	}
}

// Empty reports whether no violation was recorded
func (e *Errors) Empty() bool {
	return len(e.fields) == 0
}

// Fields returns the recorded violations keyed by field
func (e *Errors) Fields() map[string][]string {
	return e.fields
}

// Err returns nil when empty, otherwise a *shared.ValidationError
func (e *Errors) Err() error {
	if e.Empty() {
		return nil
	}
	return shared.NewValidationError(e.fields)
}

// Required checks that a string is not blank
func (e *Errors) Required(field, value string) {
	e.Check(strings.TrimSpace(value) != "", field, Label(field)+" is required")
}

// RequiredID checks that an id is not the nil UUID
func (e *Errors) RequiredID(field string, id uuid.UUID) {
	e.Check(id != uuid.Nil, field, Label(field)+" is required")
}

// RequiredDate checks that a date is set
func (e *Errors) RequiredDate(field string, t time.Time) {
	e.Check(!t.IsZero(), field, Label(field)+" is required")
}

// MaxLength checks the character count of value
func (e *Errors) MaxLength(field, value string, max int) {
	e.Check(utf8.RuneCountInString(value) <= max, field,
		fmt.Sprintf("%s must not exceed %d characters", Label(field), max))
}

// OptionalMaxLength applies MaxLength when value is present
func (e *Errors) OptionalMaxLength(field string, value *string, max int) {
	if value != nil {
		e.MaxLength(field, *value, max)
	}
}

// LengthBetween checks min <= characters <= max
func (e *Errors) LengthBetween(field, value string, min, max int) {
	n := utf8.RuneCountInString(value)
	e.Check(n >= min && n <= max, field,
		fmt.Sprintf("%s must be between %d and %d characters", Label(field), min, max))
}

// ExactLength checks the character count equals n
func (e *Errors) ExactLength(field, value string, n int) {
	e.Check(utf8.RuneCountInString(value) == n, field,
		fmt.Sprintf("%s must be %d characters", Label(field), n))
}

// Matches checks value against pattern; message describes the expected shape
func (e *Errors) Matches(field, value string, pattern *regexp.Regexp, message string) {
	e.Check(pattern.MatchString(value), field, message)
}

// Email checks the address format
func (e *Errors) Email(field, value string) {
	e.Check(formatValidator.Var(value, "email") == nil, field, Label(field)+" must be a valid email address")
}

// IntBetween checks min <= value <= max
func (e *Errors) IntBetween(field string, value, min, max int) {
	e.Check(value >= min && value <= max, field,
		fmt.Sprintf("%s must be between %d and %d", Label(field), min, max))
}

// GreaterThan checks value > min
func (e *Errors) GreaterThan(field string, value, min decimal.Decimal) {
	e.Check(value.GreaterThan(min), field,
		fmt.Sprintf("%s must be greater than %s", Label(field), min.String()))
}

// GreaterThanOrEqual checks value >= min
func (e *Errors) GreaterThanOrEqual(field string, value, min decimal.Decimal) {
	e.Check(value.GreaterThanOrEqual(min), field,
		fmt.Sprintf("%s must be greater than or equal to %s", Label(field), min.String()))
}

// LessThan checks value < max
func (e *Errors) LessThan(field string, value, max decimal.Decimal) {
	e.Check(value.LessThan(max), field,
		fmt.Sprintf("%s must be less than %s", Label(field), max.String()))
}

// NotAfter checks value <= limit
func (e *Errors) NotAfter(field string, value, limit time.Time, message string) {
	e.Check(!value.After(limit), field, message)
}

// DateRange checks to >= from when both bounds are present
func (e *Errors) DateRange(field string, from, to *time.Time) {
	if from != nil && to != nil {
		e.Check(!to.Before(*from), field, Label(field)+" must be on or after the start of the range")
	}
}

// Label turns a snake_case field key into a sentence-case label.
func Label(field string) string {
	if i := strings.LastIndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	words := strings.Split(field, "_")
	for i, w := range words {
		if w == "id" {
			words[i] = "ID"
		}
	}
	label := strings.Join(words, " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

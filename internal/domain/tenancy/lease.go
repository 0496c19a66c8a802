package tenancy

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LeaseStatus represents the lifecycle state of a lease
type LeaseStatus int

const (
	LeaseStatusActive     LeaseStatus = 1
	LeaseStatusTerminated LeaseStatus = 2
	LeaseStatusExpired    LeaseStatus = 3
)

// IsValid checks if the status is a defined LeaseStatus
func (s LeaseStatus) IsValid() bool {
	return s >= LeaseStatusActive && s <= LeaseStatusExpired
}

// String returns the name of the LeaseStatus
func (s LeaseStatus) String() string {
	switch s {
	case LeaseStatusActive:
		return "Active"
	case LeaseStatusTerminated:
		return "Terminated"
	case LeaseStatusExpired:
		return "Expired"
	default:
		return "Unknown"
	}
}

// Rent day bounds. Days past the 28th do not exist in every month.
const (
	MinRentDay = 1
	MaxRentDay = 28
)

// LeaseTerms holds the user-editable attributes of a lease
type LeaseTerms struct {
	StartDate      time.Time
	EndDate        *time.Time
	MonthlyRent    decimal.Decimal
	Currency       valueobject.Currency
	DepositAmount  *decimal.Decimal
	RentDayOfMonth int
	Notes          *string
}

// Lease binds a tenant to a property for a period
type Lease struct {
	shared.BaseEntity
	LeaseTerms
	PropertyID uuid.UUID
	TenantID   uuid.UUID
	Status     LeaseStatus
}

// NewLease creates an active lease
func NewLease(propertyID, tenantID uuid.UUID, terms LeaseTerms, now time.Time) (*Lease, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Lease property is required")
	}
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Lease tenant is required")
	}
	terms, err := normalizeTerms(terms)
	if err != nil {
		return nil, err
	}
	return &Lease{
		BaseEntity: shared.NewBaseEntity(now),
		LeaseTerms: terms,
		PropertyID: propertyID,
		TenantID:   tenantID,
		Status:     LeaseStatusActive,
	}, nil
}

// Update returns a copy of the lease carrying the new terms
func (l Lease) Update(terms LeaseTerms, now time.Time) (Lease, error) {
	terms, err := normalizeTerms(terms)
	if err != nil {
		return l, err
	}
	l.LeaseTerms = terms
	l.Touch(now)
	return l, nil
}

// Terminate ends the lease on endDate
func (l Lease) Terminate(endDate time.Time, now time.Time) (Lease, error) {
	if l.Status == LeaseStatusTerminated {
		return l, shared.NewDomainError(shared.CodeInvalidState, "Lease is already terminated")
	}
	if !endDate.After(l.StartDate) {
		return l, shared.NewDomainError("INVALID_END_DATE", "End date must be after start date")
	}
	l.EndDate = &endDate
	l.Status = LeaseStatusTerminated
	l.Touch(now)
	return l, nil
}

// Expire marks a lease that ran to its end date
func (l Lease) Expire(now time.Time) (Lease, error) {
	if l.Status != LeaseStatusActive {
		return l, shared.NewDomainError(shared.CodeInvalidState, "Only active leases can expire")
	}
	l.Status = LeaseStatusExpired
	l.Touch(now)
	return l, nil
}

func normalizeTerms(t LeaseTerms) (LeaseTerms, error) {
	t.Currency = valueobject.NormalizeCurrency(string(t.Currency))
	if t.StartDate.IsZero() {
		return t, shared.NewDomainError("INVALID_START_DATE", "Start date is required")
	}
	if t.EndDate != nil && !t.EndDate.After(t.StartDate) {
		return t, shared.NewDomainError("INVALID_END_DATE", "End date must be after start date")
	}
	if !t.MonthlyRent.IsPositive() {
		return t, shared.NewDomainError("INVALID_RENT", "Monthly rent must be positive")
	}
	if t.DepositAmount != nil && t.DepositAmount.IsNegative() {
		return t, shared.NewDomainError("INVALID_DEPOSIT", "Deposit cannot be negative")
	}
	if t.RentDayOfMonth < MinRentDay || t.RentDayOfMonth > MaxRentDay {
		return t, shared.NewDomainError("INVALID_RENT_DAY", "Rent day must be between 1 and 28")
	}
	return t, nil
}

// LeaseFilter narrows a lease list
type LeaseFilter struct {
	shared.PageRequest
	PropertyID *uuid.UUID
	TenantID   *uuid.UUID
	Status     *LeaseStatus
}

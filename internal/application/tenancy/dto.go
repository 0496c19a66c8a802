package tenancy

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/application/pipeline"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/propman/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
)

// unknownName is shown when a referenced entity cannot be resolved
const unknownName = "Unknown"

// =============================================================================
// Tenants
// =============================================================================

// TenantFields are the attributes shared by create and update requests
type TenantFields struct {
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Email            string  `json:"email"`
	Phone            *string `json:"phone"`
	EmergencyContact *string `json:"emergency_contact"`
	EmergencyPhone   *string `json:"emergency_phone"`
	Notes            *string `json:"notes"`
}

func (f TenantFields) details() tenancy.TenantDetails {
	return tenancy.TenantDetails{
		FirstName:        f.FirstName,
		LastName:         f.LastName,
		Email:            f.Email,
		Phone:            f.Phone,
		EmergencyContact: f.EmergencyContact,
		EmergencyPhone:   f.EmergencyPhone,
		Notes:            f.Notes,
	}
}

// CreateTenantCommand registers a tenant
type CreateTenantCommand struct {
	pipeline.Command
	TenantFields
}

// RequestName implements pipeline.Request
func (CreateTenantCommand) RequestName() string { return "CreateTenant" }

// UpdateTenantCommand replaces the details of a tenant
type UpdateTenantCommand struct {
	pipeline.Command
	ID uuid.UUID `json:"-"`
	TenantFields
}

// RequestName implements pipeline.Request
func (UpdateTenantCommand) RequestName() string { return "UpdateTenant" }

// GetTenantQuery loads a single tenant
type GetTenantQuery struct {
	pipeline.Query
	ID uuid.UUID
}

// RequestName implements pipeline.Request
func (GetTenantQuery) RequestName() string { return "GetTenant" }

// ListTenantsQuery pages through tenants ordered by last name
type ListTenantsQuery struct {
	pipeline.Query
	shared.PageRequest
	SearchTerm string
}

// RequestName implements pipeline.Request
func (ListTenantsQuery) RequestName() string { return "ListTenants" }

// TenantResponse is the full representation of a tenant
type TenantResponse struct {
	ID               uuid.UUID `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	Phone            *string   `json:"phone,omitempty"`
	EmergencyContact *string   `json:"emergency_contact,omitempty"`
	EmergencyPhone   *string   `json:"emergency_phone,omitempty"`
	Notes            *string   `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TenantListItem is the slim list representation of a tenant
type TenantListItem struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Phone    *string   `json:"phone,omitempty"`
}

func toTenantResponse(t *tenancy.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:               t.ID,
		FirstName:        t.FirstName,
		LastName:         t.LastName,
		FullName:         t.FullName(),
		Email:            t.Email,
		Phone:            t.Phone,
		EmergencyContact: t.EmergencyContact,
		EmergencyPhone:   t.EmergencyPhone,
		Notes:            t.Notes,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func toTenantListItem(t tenancy.Tenant) TenantListItem {
	return TenantListItem{
		ID:       t.ID,
		FullName: t.FullName(),
		Email:    t.Email,
		Phone:    t.Phone,
	}
}

// =============================================================================
// Leases
// =============================================================================

// LeaseFields are the terms shared by create and update requests
type LeaseFields struct {
	StartDate      time.Time        `json:"start_date"`
	EndDate        *time.Time       `json:"end_date"`
	MonthlyRent    decimal.Decimal  `json:"monthly_rent"`
	Currency       string           `json:"currency"`
	DepositAmount  *decimal.Decimal `json:"deposit_amount"`
	RentDayOfMonth int              `json:"rent_day_of_month"`
	Notes          *string          `json:"notes"`
}

func (f LeaseFields) terms() tenancy.LeaseTerms {
	return tenancy.LeaseTerms{
		StartDate:      f.StartDate,
		EndDate:        f.EndDate,
		MonthlyRent:    f.MonthlyRent,
		Currency:       valueobject.Currency(f.Currency),
		DepositAmount:  f.DepositAmount,
		RentDayOfMonth: f.RentDayOfMonth,
		Notes:          f.Notes,
	}
}

// CreateLeaseCommand lets a property to a tenant
type CreateLeaseCommand struct {
	pipeline.Command
	PropertyID uuid.UUID `json:"property_id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	LeaseFields
}

// RequestName implements pipeline.Request
func (CreateLeaseCommand) RequestName() string { return "CreateLease" }

// UpdateLeaseCommand replaces the terms of a lease
type UpdateLeaseCommand struct {
	pipeline.Command
	ID uuid.UUID `json:"-"`
	LeaseFields
}

// RequestName implements pipeline.Request
func (UpdateLeaseCommand) RequestName() string { return "UpdateLease" }

// TerminateLeaseCommand ends a lease early
type TerminateLeaseCommand struct {
	pipeline.Command
	ID      uuid.UUID `json:"-"`
	EndDate time.Time `json:"end_date"`
}

// RequestName implements pipeline.Request
func (TerminateLeaseCommand) RequestName() string { return "TerminateLease" }

// ExpireEndedLeasesCommand expires active leases that ended before AsOf.
// A zero AsOf means now.
type ExpireEndedLeasesCommand struct {
	pipeline.Command
	AsOf time.Time
}

// RequestName implements pipeline.Request
func (ExpireEndedLeasesCommand) RequestName() string { return "ExpireEndedLeases" }

// GetLeaseQuery loads a single lease
type GetLeaseQuery struct {
	pipeline.Query
	ID uuid.UUID
}

// RequestName implements pipeline.Request
func (GetLeaseQuery) RequestName() string { return "GetLease" }

// ListLeasesQuery pages through leases, newest start date first
type ListLeasesQuery struct {
	pipeline.Query
	shared.PageRequest
	PropertyID *uuid.UUID
	TenantID   *uuid.UUID
	Status     *int
}

// RequestName implements pipeline.Request
func (ListLeasesQuery) RequestName() string { return "ListLeases" }

// LeaseResponse is the full representation of a lease
type LeaseResponse struct {
	ID             uuid.UUID        `json:"id"`
	PropertyID     uuid.UUID        `json:"property_id"`
	PropertyName   string           `json:"property_name"`
	TenantID       uuid.UUID        `json:"tenant_id"`
	TenantName     string           `json:"tenant_name"`
	StartDate      time.Time        `json:"start_date"`
	EndDate        *time.Time       `json:"end_date,omitempty"`
	MonthlyRent    decimal.Decimal  `json:"monthly_rent"`
	Currency       string           `json:"currency"`
	DepositAmount  *decimal.Decimal `json:"deposit_amount,omitempty"`
	RentDayOfMonth int              `json:"rent_day_of_month"`
	Status         int              `json:"status"`
	StatusName     string           `json:"status_name"`
	Notes          *string          `json:"notes,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// LeaseListItem is the slim list representation of a lease
type LeaseListItem struct {
	ID           uuid.UUID       `json:"id"`
	PropertyID   uuid.UUID       `json:"property_id"`
	PropertyName string          `json:"property_name"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	TenantName   string          `json:"tenant_name"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      *time.Time      `json:"end_date,omitempty"`
	MonthlyRent  decimal.Decimal `json:"monthly_rent"`
	Currency     string          `json:"currency"`
	Status       int             `json:"status"`
	StatusName   string          `json:"status_name"`
}

func toLeaseResponse(l *tenancy.Lease, propertyName, tenantName string) *LeaseResponse {
	return &LeaseResponse{
		ID:             l.ID,
		PropertyID:     l.PropertyID,
		PropertyName:   propertyName,
		TenantID:       l.TenantID,
		TenantName:     tenantName,
		StartDate:      l.StartDate,
		EndDate:        l.EndDate,
		MonthlyRent:    l.MonthlyRent,
		Currency:       l.Currency.String(),
		DepositAmount:  l.DepositAmount,
		RentDayOfMonth: l.RentDayOfMonth,
		Status:         int(l.Status),
		StatusName:     l.Status.String(),
		Notes:          l.Notes,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func toLeaseListItem(l tenancy.Lease, propertyName, tenantName string) LeaseListItem {
	return LeaseListItem{
		ID:           l.ID,
		PropertyID:   l.PropertyID,
		PropertyName: propertyName,
		TenantID:     l.TenantID,
		TenantName:   tenantName,
		StartDate:    l.StartDate,
		EndDate:      l.EndDate,
		MonthlyRent:  l.MonthlyRent,
		Currency:     l.Currency.String(),
		Status:       int(l.Status),
		StatusName:   l.Status.String(),
	}
}

func nameOr(names map[uuid.UUID]string, id uuid.UUID) string {
	if name, ok := names[id]; ok {
		return name
	}
	return unknownName
}

package tenancy

import (
	"strings"
	"time"

	"github.com/propman/backend/internal/domain/shared"
)

// TenantDetails holds the user-editable attributes of a tenant
type TenantDetails struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            *string
	EmergencyContact *string
	EmergencyPhone   *string
	Notes            *string
}

// Tenant is a person renting a property
type Tenant struct {
	shared.BaseEntity
	TenantDetails
}

// NewTenant creates a tenant. Email is stored lowercased.
func NewTenant(d TenantDetails, now time.Time) (*Tenant, error) {
	d, err := normalizeTenant(d)
	if err != nil {
		return nil, err
	}
	return &Tenant{
		BaseEntity:    shared.NewBaseEntity(now),
		TenantDetails: d,
	}, nil
}

// Update returns a copy of the tenant carrying the new details
func (t Tenant) Update(d TenantDetails, now time.Time) (Tenant, error) {
	d, err := normalizeTenant(d)
	if err != nil {
		return t, err
	}
	t.TenantDetails = d
	t.Touch(now)
	return t, nil
}

// FullName is "First Last"
func (t Tenant) FullName() string {
	return t.FirstName + " " + t.LastName
}

// NormalizeEmail trims and lowercases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeTenant(d TenantDetails) (TenantDetails, error) {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = NormalizeEmail(d.Email)
	if d.FirstName == "" || d.LastName == "" {
		return d, shared.NewDomainError("INVALID_NAME", "Tenant first and last name are required")
	}
	if d.Email == "" {
		return d, shared.NewDomainError("INVALID_EMAIL", "Tenant email is required")
	}
	return d, nil
}

// TenantFilter narrows a tenant list
type TenantFilter struct {
	shared.PageRequest
	Search string
}

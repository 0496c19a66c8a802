// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Each model carries the gorm tags for its table and a ToDomain/FromDomain pair.
// Repositories only ever read and write models; callers only ever see domain types.
//
// Structure:
//   - base.go: BaseModel shared by every table
//   - property.go: properties
//   - tenancy.go: tenants and leases
//   - expense.go: expense categories, expenses and their attachments
//   - money_flow.go: money flows
package models

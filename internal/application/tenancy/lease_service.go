package tenancy

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/application/pipeline"
	"github.com/propman/backend/internal/domain/property"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/tenancy"
)

// LeaseService handles lease commands and queries
type LeaseService struct {
	pipe       *pipeline.Pipeline
	leases     tenancy.LeaseRepository
	tenants    tenancy.TenantRepository
	properties property.PropertyRepository
	clock      shared.Clock
}

// NewLeaseService creates a new LeaseService
func NewLeaseService(
	pipe *pipeline.Pipeline,
	leases tenancy.LeaseRepository,
	tenants tenancy.TenantRepository,
	properties property.PropertyRepository,
	clock shared.Clock,
) *LeaseService {
	return &LeaseService{
		pipe:       pipe,
		leases:     leases,
		tenants:    tenants,
		properties: properties,
		clock:      clock,
	}
}

// Create lets a property to a tenant
func (s *LeaseService) Create(ctx context.Context, cmd CreateLeaseCommand) (*LeaseResponse, error) {
	return pipeline.Send(ctx, s.pipe, cmd, s.create)
}

// Update replaces the terms of a lease
func (s *LeaseService) Update(ctx context.Context, cmd UpdateLeaseCommand) (*LeaseResponse, error) {
	return pipeline.Send(ctx, s.pipe, cmd, s.update)
}

// Terminate ends a lease on the given date
func (s *LeaseService) Terminate(ctx context.Context, cmd TerminateLeaseCommand) (*LeaseResponse, error) {
	return pipeline.Send(ctx, s.pipe, cmd, s.terminate)
}

// ExpireEnded marks every active lease whose end date has passed as expired
// and reports how many changed.
func (s *LeaseService) ExpireEnded(ctx context.Context, cmd ExpireEndedLeasesCommand) (int, error) {
	return pipeline.Send(ctx, s.pipe, cmd, s.expireEnded)
}

// Get loads a lease by id
func (s *LeaseService) Get(ctx context.Context, q GetLeaseQuery) (*LeaseResponse, error) {
	return pipeline.Send(ctx, s.pipe, q, s.get)
}

// List pages through leases
func (s *LeaseService) List(ctx context.Context, q ListLeasesQuery) (shared.PagedList[LeaseListItem], error) {
	return pipeline.Send(ctx, s.pipe, q, s.list)
}

func (s *LeaseService) create(ctx context.Context, cmd CreateLeaseCommand) (*LeaseResponse, error) {
	p, err := s.properties.FindByID(ctx, cmd.PropertyID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NotFound(property.EntityName, cmd.PropertyID)
	}
	if err != nil {
		return nil, err
	}
	t, err := s.tenants.FindByID(ctx, cmd.TenantID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NotFound(tenancy.TenantEntityName, cmd.TenantID)
	}
	if err != nil {
		return nil, err
	}

	l, err := tenancy.NewLease(cmd.PropertyID, cmd.TenantID, cmd.terms(), s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.leases.Save(ctx, l); err != nil {
		return nil, err
	}
	return toLeaseResponse(l, p.Name, t.FullName()), nil
}

func (s *LeaseService) update(ctx context.Context, cmd UpdateLeaseCommand) (*LeaseResponse, error) {
	l, err := s.find(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	updated, err := l.Update(cmd.terms(), s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.leases.Save(ctx, &updated); err != nil {
		return nil, err
	}
	return s.respond(ctx, &updated)
}

func (s *LeaseService) terminate(ctx context.Context, cmd TerminateLeaseCommand) (*LeaseResponse, error) {
	l, err := s.find(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	terminated, err := l.Terminate(cmd.EndDate, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.leases.Save(ctx, &terminated); err != nil {
		return nil, err
	}
	return s.respond(ctx, &terminated)
}

func (s *LeaseService) expireEnded(ctx context.Context, cmd ExpireEndedLeasesCommand) (int, error) {
	asOf := cmd.AsOf
	if asOf.IsZero() {
		asOf = s.clock.Now()
	}
	ended, err := s.leases.ListEnded(ctx, asOf)
	if err != nil {
		return 0, err
	}
	for i := range ended {
		expired, err := ended[i].Expire(s.clock.Now())
		if err != nil {
			return 0, err
		}
		if err := s.leases.Save(ctx, &expired); err != nil {
			return 0, err
		}
	}
	return len(ended), nil
}

func (s *LeaseService) get(ctx context.Context, q GetLeaseQuery) (*LeaseResponse, error) {
	l, err := s.find(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, l)
}

func (s *LeaseService) list(ctx context.Context, q ListLeasesQuery) (shared.PagedList[LeaseListItem], error) {
	filter := tenancy.LeaseFilter{
		PageRequest: q.PageRequest,
		PropertyID:  q.PropertyID,
		TenantID:    q.TenantID,
	}
	if q.Status != nil {
		status := tenancy.LeaseStatus(*q.Status)
		filter.Status = &status
	}

	items, total, err := s.leases.List(ctx, filter)
	if err != nil {
		return shared.PagedList[LeaseListItem]{}, err
	}
	propertyNames, tenantNames, err := s.names(ctx, items...)
	if err != nil {
		return shared.PagedList[LeaseListItem]{}, err
	}

	page := shared.NewPagedList(items, total, q.PageNumber, q.PageSize)
	return shared.MapPagedList(page, func(l tenancy.Lease) LeaseListItem {
		return toLeaseListItem(l, nameOr(propertyNames, l.PropertyID), nameOr(tenantNames, l.TenantID))
	}), nil
}

func (s *LeaseService) respond(ctx context.Context, l *tenancy.Lease) (*LeaseResponse, error) {
	propertyNames, tenantNames, err := s.names(ctx, *l)
	if err != nil {
		return nil, err
	}
	return toLeaseResponse(l, nameOr(propertyNames, l.PropertyID), nameOr(tenantNames, l.TenantID)), nil
}

// names resolves display names for the properties and tenants the leases refer to
func (s *LeaseService) names(ctx context.Context, leases ...tenancy.Lease) (map[uuid.UUID]string, map[uuid.UUID]string, error) {
	if len(leases) == 0 {
		return nil, nil, nil
	}
	propertyIDs := make([]uuid.UUID, 0, len(leases))
	tenantIDs := make([]uuid.UUID, 0, len(leases))
	for _, l := range leases {
		propertyIDs = append(propertyIDs, l.PropertyID)
		tenantIDs = append(tenantIDs, l.TenantID)
	}

	propertyNames, err := s.properties.FindNames(ctx, propertyIDs)
	if err != nil {
		return nil, nil, err
	}
	tenants, err := s.tenants.FindByIDs(ctx, tenantIDs)
	if err != nil {
		return nil, nil, err
	}
	tenantNames := make(map[uuid.UUID]string, len(tenants))
	for id, t := range tenants {
		tenantNames[id] = t.FullName()
	}
	return propertyNames, tenantNames, nil
}

func (s *LeaseService) find(ctx context.Context, id uuid.UUID) (*tenancy.Lease, error) {
	l, err := s.leases.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NotFound(tenancy.LeaseEntityName, id)
	}
	return l, err
}

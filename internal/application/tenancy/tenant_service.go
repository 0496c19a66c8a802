package tenancy

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/application/pipeline"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/tenancy"
)

// TenantService handles tenant commands and queries
type TenantService struct {
	pipe  *pipeline.Pipeline
	repo  tenancy.TenantRepository
	clock shared.Clock
}

// NewTenantService creates a new TenantService
func NewTenantService(pipe *pipeline.Pipeline, repo tenancy.TenantRepository, clock shared.Clock) *TenantService {
	return &TenantService{
		pipe:  pipe,
		repo:  repo,
		clock: clock,
	}
}

// Create registers a tenant
func (s *TenantService) Create(ctx context.Context, cmd CreateTenantCommand) (*TenantResponse, error) {
	return pipeline.Send(ctx, s.pipe, cmd, s.create)
}

// Update replaces the details of a tenant
func (s *TenantService) Update(ctx context.Context, cmd UpdateTenantCommand) (*TenantResponse, error) {
	return pipeline.Send(ctx, s.pipe, cmd, s.update)
}

// Get loads a tenant by id
func (s *TenantService) Get(ctx context.Context, q GetTenantQuery) (*TenantResponse, error) {
	return pipeline.Send(ctx, s.pipe, q, s.get)
}

// List pages through tenants
func (s *TenantService) List(ctx context.Context, q ListTenantsQuery) (shared.PagedList[TenantListItem], error) {
	return pipeline.Send(ctx, s.pipe, q, s.list)
}

func (s *TenantService) create(ctx context.Context, cmd CreateTenantCommand) (*TenantResponse, error) {
	if err := s.ensureEmailAvailable(ctx, cmd.Email, nil); err != nil {
		return nil, err
	}
	t, err := tenancy.NewTenant(cmd.details(), s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

func (s *TenantService) update(ctx context.Context, cmd UpdateTenantCommand) (*TenantResponse, error) {
	t, err := s.find(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailAvailable(ctx, cmd.Email, &cmd.ID); err != nil {
		return nil, err
	}
	updated, err := t.Update(cmd.details(), s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, &updated); err != nil {
		return nil, err
	}
	return toTenantResponse(&updated), nil
}

func (s *TenantService) get(ctx context.Context, q GetTenantQuery) (*TenantResponse, error) {
	t, err := s.find(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

func (s *TenantService) list(ctx context.Context, q ListTenantsQuery) (shared.PagedList[TenantListItem], error) {
	items, total, err := s.repo.List(ctx, tenancy.TenantFilter{
		PageRequest: q.PageRequest,
		Search:      q.SearchTerm,
	})
	if err != nil {
		return shared.PagedList[TenantListItem]{}, err
	}
	page := shared.NewPagedList(items, total, q.PageNumber, q.PageSize)
	return shared.MapPagedList(page, toTenantListItem), nil
}

// ensureEmailAvailable reports a taken address as a field error on email
func (s *TenantService) ensureEmailAvailable(ctx context.Context, email string, excludeID *uuid.UUID) error {
	taken, err := s.repo.ExistsByEmail(ctx, tenancy.NormalizeEmail(email), excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewFieldError("email", "A tenant with this email already exists")
	}
	return nil
}

func (s *TenantService) find(ctx context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	t, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NotFound(tenancy.TenantEntityName, id)
	}
	return t, err
}

package property

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/application/pipeline"
	"github.com/propman/backend/internal/domain/property"
	"github.com/propman/backend/internal/domain/shared"
)

// PropertyService handles property commands and queries
type PropertyService struct {
	pipe  *pipeline.Pipeline
	repo  property.PropertyRepository
	clock shared.Clock
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(pipe *pipeline.Pipeline, repo property.PropertyRepository, clock shared.Clock) *PropertyService {
	return &PropertyService{
		pipe:  pipe,
		repo:  repo,
		clock: clock,
	}
}

// Create adds a property
func (s *PropertyService) Create(ctx context.Context, cmd CreatePropertyCommand) (*PropertyResponse, error) {
	return pipeline.Send(ctx, s.pipe, cmd, s.create)
}

// Update replaces the details of a property
func (s *PropertyService) Update(ctx context.Context, cmd UpdatePropertyCommand) (*PropertyResponse, error) {
	return pipeline.Send(ctx, s.pipe, cmd, s.update)
}

// Archive removes a property from the active portfolio
func (s *PropertyService) Archive(ctx context.Context, cmd ArchivePropertyCommand) error {
	return pipeline.Exec(ctx, s.pipe, cmd, s.archive)
}

// Activate returns a property to the active portfolio
func (s *PropertyService) Activate(ctx context.Context, cmd ActivatePropertyCommand) (*PropertyResponse, error) {
	return pipeline.Send(ctx, s.pipe, cmd, s.activate)
}

// Get loads a property by id
func (s *PropertyService) Get(ctx context.Context, q GetPropertyQuery) (*PropertyResponse, error) {
	return pipeline.Send(ctx, s.pipe, q, s.get)
}

// List pages through properties
func (s *PropertyService) List(ctx context.Context, q ListPropertiesQuery) (shared.PagedList[PropertyListItem], error) {
	return pipeline.Send(ctx, s.pipe, q, s.list)
}

func (s *PropertyService) create(ctx context.Context, cmd CreatePropertyCommand) (*PropertyResponse, error) {
	p, err := property.NewProperty(cmd.details(), s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return toPropertyResponse(p), nil
}

func (s *PropertyService) update(ctx context.Context, cmd UpdatePropertyCommand) (*PropertyResponse, error) {
	p, err := s.find(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	updated, err := p.Update(cmd.details(), s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, &updated); err != nil {
		return nil, err
	}
	return toPropertyResponse(&updated), nil
}

func (s *PropertyService) archive(ctx context.Context, cmd ArchivePropertyCommand) error {
	p, err := s.find(ctx, cmd.ID)
	if err != nil {
		return err
	}
	archived := p.Archive(s.clock.Now())
	return s.repo.Save(ctx, &archived)
}

func (s *PropertyService) activate(ctx context.Context, cmd ActivatePropertyCommand) (*PropertyResponse, error) {
	p, err := s.find(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	active := p.Activate(s.clock.Now())
	if err := s.repo.Save(ctx, &active); err != nil {
		return nil, err
	}
	return toPropertyResponse(&active), nil
}

func (s *PropertyService) get(ctx context.Context, q GetPropertyQuery) (*PropertyResponse, error) {
	p, err := s.find(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	return toPropertyResponse(p), nil
}

func (s *PropertyService) list(ctx context.Context, q ListPropertiesQuery) (shared.PagedList[PropertyListItem], error) {
	filter := property.Filter{
		PageRequest: q.PageRequest,
		Search:      q.SearchTerm,
	}
	if q.Status != nil {
		status := property.PropertyStatus(*q.Status)
		filter.Status = &status
	}
	if q.Type != nil {
		t := property.PropertyType(*q.Type)
		filter.Type = &t
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return shared.PagedList[PropertyListItem]{}, err
	}
	page := shared.NewPagedList(items, total, q.PageNumber, q.PageSize)
	return shared.MapPagedList(page, toPropertyListItem), nil
}

func (s *PropertyService) find(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NotFound(property.EntityName, id)
	}
	return p, err
}

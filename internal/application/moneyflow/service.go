package moneyflow

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/application/pipeline"
	"github.com/propman/backend/internal/domain/expense"
	"github.com/propman/backend/internal/domain/moneyflow"
	"github.com/propman/backend/internal/domain/property"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/tenancy"
)

// MoneyFlowService handles money flow commands and queries
type MoneyFlowService struct {
	pipe       *pipeline.Pipeline
	flows      moneyflow.MoneyFlowRepository
	properties property.PropertyRepository
	categories expense.CategoryRepository
	tenants    tenancy.TenantRepository
	leases     tenancy.LeaseRepository
	clock      shared.Clock
}

// MoneyFlowServiceDeps groups the collaborators of MoneyFlowService
type MoneyFlowServiceDeps struct {
	Flows      moneyflow.MoneyFlowRepository
	Properties property.PropertyRepository
	Categories expense.CategoryRepository
	Tenants    tenancy.TenantRepository
	Leases     tenancy.LeaseRepository
	Clock      shared.Clock
}

// NewMoneyFlowService creates a new MoneyFlowService
func NewMoneyFlowService(pipe *pipeline.Pipeline, deps MoneyFlowServiceDeps) *MoneyFlowService {
	return &MoneyFlowService{
		pipe:       pipe,
		flows:      deps.Flows,
		properties: deps.Properties,
		categories: deps.Categories,
		tenants:    deps.Tenants,
		leases:     deps.Leases,
		clock:      deps.Clock,
	}
}

// Create records a money flow
func (s *MoneyFlowService) Create(ctx context.Context, cmd CreateMoneyFlowCommand) (*MoneyFlowResponse, error) {
	return pipeline.Send(ctx, s.pipe, cmd, s.create)
}

// Update replaces the details of a money flow
func (s *MoneyFlowService) Update(ctx context.Context, cmd UpdateMoneyFlowCommand) (*MoneyFlowResponse, error) {
	return pipeline.Send(ctx, s.pipe, cmd, s.update)
}

// Delete removes a money flow
func (s *MoneyFlowService) Delete(ctx context.Context, cmd DeleteMoneyFlowCommand) error {
	return pipeline.Exec(ctx, s.pipe, cmd, s.delete)
}

// Get loads a money flow by id
func (s *MoneyFlowService) Get(ctx context.Context, q GetMoneyFlowQuery) (*MoneyFlowResponse, error) {
	return pipeline.Send(ctx, s.pipe, q, s.get)
}

// List pages through money flows
func (s *MoneyFlowService) List(ctx context.Context, q ListMoneyFlowsQuery) (shared.PagedList[MoneyFlowListItem], error) {
	return pipeline.Send(ctx, s.pipe, q, s.list)
}

func (s *MoneyFlowService) create(ctx context.Context, cmd CreateMoneyFlowCommand) (*MoneyFlowResponse, error) {
	exists, err := s.properties.Exists(ctx, cmd.PropertyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NotFound(property.EntityName, cmd.PropertyID)
	}
	if err := s.checkReferences(ctx, cmd.MoneyFlowFields); err != nil {
		return nil, err
	}

	m, err := moneyflow.NewMoneyFlow(cmd.PropertyID, moneyflow.FlowType(cmd.Type), cmd.details(), s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.flows.Save(ctx, m); err != nil {
		return nil, err
	}
	return s.respond(ctx, m)
}

func (s *MoneyFlowService) update(ctx context.Context, cmd UpdateMoneyFlowCommand) (*MoneyFlowResponse, error) {
	m, err := s.find(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, cmd.MoneyFlowFields); err != nil {
		return nil, err
	}

	updated, err := m.Update(cmd.details(), s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.flows.Save(ctx, &updated); err != nil {
		return nil, err
	}
	return s.respond(ctx, &updated)
}

func (s *MoneyFlowService) delete(ctx context.Context, cmd DeleteMoneyFlowCommand) error {
	if _, err := s.find(ctx, cmd.ID); err != nil {
		return err
	}
	return s.flows.Delete(ctx, cmd.ID)
}

func (s *MoneyFlowService) get(ctx context.Context, q GetMoneyFlowQuery) (*MoneyFlowResponse, error) {
	m, err := s.find(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, m)
}

func (s *MoneyFlowService) list(ctx context.Context, q ListMoneyFlowsQuery) (shared.PagedList[MoneyFlowListItem], error) {
	filter := moneyflow.Filter{
		PageRequest:       q.PageRequest,
		PropertyID:        q.PropertyID,
		DateFrom:          q.DateFrom,
		DateTo:            q.DateTo,
		ExpenseCategoryID: q.ExpenseCategoryID,
		TenantID:          q.TenantID,
		Search:            q.SearchTerm,
	}
	if q.Type != nil {
		t := moneyflow.FlowType(*q.Type)
		filter.Type = &t
	}

	items, total, err := s.flows.List(ctx, filter)
	if err != nil {
		return shared.PagedList[MoneyFlowListItem]{}, err
	}
	names, err := s.categoryNames(ctx, items...)
	if err != nil {
		return shared.PagedList[MoneyFlowListItem]{}, err
	}

	page := shared.NewPagedList(items, total, q.PageNumber, q.PageSize)
	return shared.MapPagedList(page, func(m moneyflow.MoneyFlow) MoneyFlowListItem {
		return toMoneyFlowListItem(m, lookup(names, m.ExpenseCategoryID))
	}), nil
}

// checkReferences verifies the optional category, tenant and lease ids
func (s *MoneyFlowService) checkReferences(ctx context.Context, f MoneyFlowFields) error {
	refs := []struct {
		id     *uuid.UUID
		kind   string
		exists func(context.Context, uuid.UUID) (bool, error)
	}{
		{f.ExpenseCategoryID, expense.CategoryEntityName, s.categories.Exists},
		{f.TenantID, tenancy.TenantEntityName, s.tenants.Exists},
		{f.LeaseID, tenancy.LeaseEntityName, s.leases.Exists},
	}
	for _, ref := range refs {
		if ref.id == nil || *ref.id == uuid.Nil {
			continue
		}
		ok, err := ref.exists(ctx, *ref.id)
		if err != nil {
			return err
		}
		if !ok {
			return shared.NotFound(ref.kind, *ref.id)
		}
	}
	return nil
}

func (s *MoneyFlowService) respond(ctx context.Context, m *moneyflow.MoneyFlow) (*MoneyFlowResponse, error) {
	names, err := s.categoryNames(ctx, *m)
	if err != nil {
		return nil, err
	}
	return toMoneyFlowResponse(m, lookup(names, m.ExpenseCategoryID)), nil
}

func (s *MoneyFlowService) categoryNames(ctx context.Context, flows ...moneyflow.MoneyFlow) (map[uuid.UUID]string, error) {
	var ids []uuid.UUID
	for _, m := range flows {
		if m.ExpenseCategoryID != nil {
			ids = append(ids, *m.ExpenseCategoryID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.categories.FindNames(ctx, ids)
}

func (s *MoneyFlowService) find(ctx context.Context, id uuid.UUID) (*moneyflow.MoneyFlow, error) {
	m, err := s.flows.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NotFound(moneyflow.EntityName, id)
	}
	return m, err
}

func lookup(names map[uuid.UUID]string, id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	if name, ok := names[*id]; ok {
		return &name
	}
	return nil
}

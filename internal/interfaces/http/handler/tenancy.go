package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	tenancyapp "github.com/propman/backend/internal/application/tenancy"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/interfaces/http/dto"
)

// TenantService is the application API used by TenantHandler
type TenantService interface {
	Create(ctx context.Context, cmd tenancyapp.CreateTenantCommand) (*tenancyapp.TenantResponse, error)
	Update(ctx context.Context, cmd tenancyapp.UpdateTenantCommand) (*tenancyapp.TenantResponse, error)
	Get(ctx context.Context, q tenancyapp.GetTenantQuery) (*tenancyapp.TenantResponse, error)
	List(ctx context.Context, q tenancyapp.ListTenantsQuery) (shared.PagedList[tenancyapp.TenantListItem], error)
}

// LeaseService is the application API used by LeaseHandler
type LeaseService interface {
	Create(ctx context.Context, cmd tenancyapp.CreateLeaseCommand) (*tenancyapp.LeaseResponse, error)
	Update(ctx context.Context, cmd tenancyapp.UpdateLeaseCommand) (*tenancyapp.LeaseResponse, error)
	Terminate(ctx context.Context, cmd tenancyapp.TerminateLeaseCommand) (*tenancyapp.LeaseResponse, error)
	Get(ctx context.Context, q tenancyapp.GetLeaseQuery) (*tenancyapp.LeaseResponse, error)
	List(ctx context.Context, q tenancyapp.ListLeasesQuery) (shared.PagedList[tenancyapp.LeaseListItem], error)
}

// TenantHandler serves /tenants. Tenants have no delete endpoint; leases and
// money flows keep referring to them.
type TenantHandler struct {
	BaseHandler
	tenants TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(base BaseHandler, tenants TenantService) *TenantHandler {
	return &TenantHandler{BaseHandler: base, tenants: tenants}
}

// Create godoc
// @ID           createTenant
//
//	@Summary		Create a tenant
//	@Tags			tenants
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tenancyapp.TenantFields	true	"Tenant"
//	@Success		201			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/tenants [post]
func (h *TenantHandler) Create(c *gin.Context) {
	var fields tenancyapp.TenantFields
	if !h.BindJSON(c, &fields) {
		return
	}
	resp, err := h.tenants.Create(c.Request.Context(), tenancyapp.CreateTenantCommand{TenantFields: fields})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update godoc
// @ID           updateTenant
//
//	@Summary		Update a tenant
//	@Tags			tenants
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string	true	"Resource ID"
//	@Param			request	body		tenancyapp.TenantFields	true	"Tenant"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/tenants/{id} [put]
func (h *TenantHandler) Update(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	var fields tenancyapp.TenantFields
	if !h.BindJSON(c, &fields) {
		return
	}
	resp, err := h.tenants.Update(c.Request.Context(), tenancyapp.UpdateTenantCommand{ID: id, TenantFields: fields})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get godoc
// @ID           getTenantById
//
//	@Summary		Get a tenant
//	@Tags			tenants
//	@Produce		json
//	@Param			id		path		string	true	"Resource ID"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/tenants/{id} [get]
func (h *TenantHandler) Get(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	resp, err := h.tenants.Get(c.Request.Context(), tenancyapp.GetTenantQuery{ID: id})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listTenants
//
//	@Summary		List tenants
//	@Tags			tenants
//	@Produce		json
//	@Param			page_number	query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)	maximum(100)
//	@Param			search_term	query		string	false	"Search term (name, email)"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/tenants [get]
func (h *TenantHandler) List(c *gin.Context) {
	params := newQueryParams(c)
	q := tenancyapp.ListTenantsQuery{
		PageRequest: params.Page(),
		SearchTerm:  params.String("search_term"),
	}
	if err := params.Err(); err != nil {
		h.HandleError(c, err)
		return
	}
	page, err := h.tenants.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPagedResponse(page))
}

// LeaseHandler serves /leases
type LeaseHandler struct {
	BaseHandler
	leases LeaseService
}

// NewLeaseHandler creates a new LeaseHandler
func NewLeaseHandler(base BaseHandler, leases LeaseService) *LeaseHandler {
	return &LeaseHandler{BaseHandler: base, leases: leases}
}

// Create godoc
// @ID           createLease
//
//	@Summary		Create a lease
//	@Tags			leases
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tenancyapp.CreateLeaseCommand	true	"Lease"
//	@Success		201			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/leases [post]
func (h *LeaseHandler) Create(c *gin.Context) {
	var cmd tenancyapp.CreateLeaseCommand
	if !h.BindJSON(c, &cmd) {
		return
	}
	resp, err := h.leases.Create(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update godoc
// @ID           updateLease
//
//	@Summary		Update a lease
//	@Tags			leases
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string	true	"Resource ID"
//	@Param			request	body		tenancyapp.LeaseFields	true	"Lease terms"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		422			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/leases/{id} [put]
func (h *LeaseHandler) Update(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	var fields tenancyapp.LeaseFields
	if !h.BindJSON(c, &fields) {
		return
	}
	resp, err := h.leases.Update(c.Request.Context(), tenancyapp.UpdateLeaseCommand{ID: id, LeaseFields: fields})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Terminate godoc
// @ID           terminateLease
//
//	@Summary		Terminate a lease
//	@Tags			leases
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string	true	"Resource ID"
//	@Param			request	body		tenancyapp.TerminateLeaseCommand	true	"Termination"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		422			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/leases/{id}/terminate [post]
func (h *LeaseHandler) Terminate(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	var cmd tenancyapp.TerminateLeaseCommand
	if !h.BindJSON(c, &cmd) {
		return
	}
	cmd.ID = id
	resp, err := h.leases.Terminate(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get godoc
// @ID           getLeaseById
//
//	@Summary		Get a lease
//	@Tags			leases
//	@Produce		json
//	@Param			id		path		string	true	"Resource ID"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/leases/{id} [get]
func (h *LeaseHandler) Get(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	resp, err := h.leases.Get(c.Request.Context(), tenancyapp.GetLeaseQuery{ID: id})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listLeases
//
//	@Summary		List leases
//	@Tags			leases
//	@Produce		json
//	@Param			page_number	query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)	maximum(100)
//	@Param			property_id	query		string	false	"Property ID"
//	@Param			tenant_id	query		string	false	"Tenant ID"
//	@Param			status		query		int		false	"Lease status"	Enums(1, 2, 3)
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/leases [get]
func (h *LeaseHandler) List(c *gin.Context) {
	params := newQueryParams(c)
	q := tenancyapp.ListLeasesQuery{
		PageRequest: params.Page(),
		PropertyID:  params.UUID("property_id"),
		TenantID:    params.UUID("tenant_id"),
		Status:      params.Int("status"),
	}
	if err := params.Err(); err != nil {
		h.HandleError(c, err)
		return
	}
	page, err := h.leases.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPagedResponse(page))
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	moneyflowapp "github.com/propman/backend/internal/application/moneyflow"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/interfaces/http/dto"
)

// MoneyFlowService is the application API used by MoneyFlowHandler
type MoneyFlowService interface {
	Create(ctx context.Context, cmd moneyflowapp.CreateMoneyFlowCommand) (*moneyflowapp.MoneyFlowResponse, error)
	Update(ctx context.Context, cmd moneyflowapp.UpdateMoneyFlowCommand) (*moneyflowapp.MoneyFlowResponse, error)
	Delete(ctx context.Context, cmd moneyflowapp.DeleteMoneyFlowCommand) error
	Get(ctx context.Context, q moneyflowapp.GetMoneyFlowQuery) (*moneyflowapp.MoneyFlowResponse, error)
	List(ctx context.Context, q moneyflowapp.ListMoneyFlowsQuery) (shared.PagedList[moneyflowapp.MoneyFlowListItem], error)
}

// MoneyFlowHandler serves /moneyflows
type MoneyFlowHandler struct {
	BaseHandler
	flows MoneyFlowService
}

// NewMoneyFlowHandler creates a new MoneyFlowHandler
func NewMoneyFlowHandler(base BaseHandler, flows MoneyFlowService) *MoneyFlowHandler {
	return &MoneyFlowHandler{BaseHandler: base, flows: flows}
}

// Create godoc
// @ID           createMoneyFlow
//
//	@Summary		Record income or expense
//	@Tags			moneyflows
//	@Accept			json
//	@Produce		json
//	@Param			request	body		moneyflowapp.CreateMoneyFlowCommand	true	"Money flow"
//	@Success		201			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/moneyflows [post]
func (h *MoneyFlowHandler) Create(c *gin.Context) {
	var cmd moneyflowapp.CreateMoneyFlowCommand
	if !h.BindJSON(c, &cmd) {
		return
	}
	resp, err := h.flows.Create(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update godoc
// @ID           updateMoneyFlow
//
//	@Summary		Update a money flow
//	@Description	Property and type are fixed at creation
//	@Tags			moneyflows
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string	true	"Resource ID"
//	@Param			request	body		moneyflowapp.MoneyFlowFields	true	"Money flow"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/moneyflows/{id} [put]
func (h *MoneyFlowHandler) Update(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	var fields moneyflowapp.MoneyFlowFields
	if !h.BindJSON(c, &fields) {
		return
	}
	resp, err := h.flows.Update(c.Request.Context(), moneyflowapp.UpdateMoneyFlowCommand{ID: id, MoneyFlowFields: fields})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteMoneyFlow
//
//	@Summary		Delete a money flow
//	@Tags			moneyflows
//	@Produce		json
//	@Param			id		path		string	true	"Resource ID"
//	@Success		204			"No Content"
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/moneyflows/{id} [delete]
func (h *MoneyFlowHandler) Delete(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	if err := h.flows.Delete(c.Request.Context(), moneyflowapp.DeleteMoneyFlowCommand{ID: id}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Get godoc
// @ID           getMoneyFlowById
//
//	@Summary		Get a money flow
//	@Tags			moneyflows
//	@Produce		json
//	@Param			id		path		string	true	"Resource ID"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/moneyflows/{id} [get]
func (h *MoneyFlowHandler) Get(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	resp, err := h.flows.Get(c.Request.Context(), moneyflowapp.GetMoneyFlowQuery{ID: id})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listMoneyFlows
//
//	@Summary		List money flows
//	@Tags			moneyflows
//	@Produce		json
//	@Param			page_number	query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)	maximum(100)
//	@Param			property_id	query		string	false	"Property ID"
//	@Param			type		query		int		false	"Flow type"	Enums(1, 2)
//	@Param			date_from	query		string	false	"From date (YYYY-MM-DD)"
//	@Param			date_to		query		string	false	"To date (YYYY-MM-DD)"
//	@Param			expense_category_id	query	string	false	"Expense category ID"
//	@Param			tenant_id	query		string	false	"Tenant ID"
//	@Param			search_term	query		string	false	"Search term (description, reference)"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/moneyflows [get]
func (h *MoneyFlowHandler) List(c *gin.Context) {
	params := newQueryParams(c)
	q := moneyflowapp.ListMoneyFlowsQuery{
		PageRequest:       params.Page(),
		PropertyID:        params.UUID("property_id"),
		Type:              params.Int("type"),
		DateFrom:          params.Date("date_from"),
		DateTo:            params.Date("date_to"),
		ExpenseCategoryID: params.UUID("expense_category_id"),
		TenantID:          params.UUID("tenant_id"),
		SearchTerm:        params.String("search_term"),
	}
	if err := params.Err(); err != nil {
		h.HandleError(c, err)
		return
	}
	page, err := h.flows.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPagedResponse(page))
}

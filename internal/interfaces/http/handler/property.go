package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	propertyapp "github.com/propman/backend/internal/application/property"
	reportapp "github.com/propman/backend/internal/application/report"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/interfaces/http/dto"
)

// PropertyService is the application API used by PropertyHandler
type PropertyService interface {
	Create(ctx context.Context, cmd propertyapp.CreatePropertyCommand) (*propertyapp.PropertyResponse, error)
	Update(ctx context.Context, cmd propertyapp.UpdatePropertyCommand) (*propertyapp.PropertyResponse, error)
	Archive(ctx context.Context, cmd propertyapp.ArchivePropertyCommand) error
	Activate(ctx context.Context, cmd propertyapp.ActivatePropertyCommand) (*propertyapp.PropertyResponse, error)
	Get(ctx context.Context, q propertyapp.GetPropertyQuery) (*propertyapp.PropertyResponse, error)
	List(ctx context.Context, q propertyapp.ListPropertiesQuery) (shared.PagedList[propertyapp.PropertyListItem], error)
}

// SummaryService produces property financial summaries
type SummaryService interface {
	PropertySummary(ctx context.Context, q reportapp.GetPropertySummaryQuery) (*reportapp.PropertySummaryResponse, error)
}

// PropertyHandler serves /properties
type PropertyHandler struct {
	BaseHandler
	properties PropertyService
	summaries  SummaryService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(base BaseHandler, properties PropertyService, summaries SummaryService) *PropertyHandler {
	return &PropertyHandler{
		BaseHandler: base,
		properties:  properties,
		summaries:   summaries,
	}
}

// Create godoc
// @ID           createProperty
//
//	@Summary		Create a property
//	@Tags			properties
//	@Accept			json
//	@Produce		json
//	@Param			request	body		propertyapp.PropertyFields	true	"Property"
//	@Success		201			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	var fields propertyapp.PropertyFields
	if !h.BindJSON(c, &fields) {
		return
	}

	resp, err := h.properties.Create(c.Request.Context(), propertyapp.CreatePropertyCommand{PropertyFields: fields})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update godoc
// @ID           updateProperty
//
//	@Summary		Update a property
//	@Tags			properties
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string	true	"Resource ID"
//	@Param			request	body		propertyapp.PropertyFields	true	"Property"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/properties/{id} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	var fields propertyapp.PropertyFields
	if !h.BindJSON(c, &fields) {
		return
	}

	resp, err := h.properties.Update(c.Request.Context(), propertyapp.UpdatePropertyCommand{ID: id, PropertyFields: fields})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Archive godoc
// @ID           archiveProperty
//
//	@Summary		Archive a property
//	@Description	Properties are archived, never removed
//	@Tags			properties
//	@Produce		json
//	@Param			id		path		string	true	"Resource ID"
//	@Success		204			"No Content"
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		422			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/properties/{id} [delete]
func (h *PropertyHandler) Archive(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	if err := h.properties.Archive(c.Request.Context(), propertyapp.ArchivePropertyCommand{ID: id}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Activate godoc
// @ID           activateProperty
//
//	@Summary		Re-activate an archived property
//	@Tags			properties
//	@Produce		json
//	@Param			id		path		string	true	"Resource ID"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		422			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/properties/{id}/activate [post]
func (h *PropertyHandler) Activate(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	resp, err := h.properties.Activate(c.Request.Context(), propertyapp.ActivatePropertyCommand{ID: id})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get godoc
// @ID           getPropertyById
//
//	@Summary		Get a property
//	@Tags			properties
//	@Produce		json
//	@Param			id		path		string	true	"Resource ID"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/properties/{id} [get]
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	resp, err := h.properties.Get(c.Request.Context(), propertyapp.GetPropertyQuery{ID: id})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listProperties
//
//	@Summary		List properties
//	@Tags			properties
//	@Produce		json
//	@Param			page_number	query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)	maximum(100)
//	@Param			status		query		int		false	"Property status"	Enums(1, 2)
//	@Param			type		query		int		false	"Property type"
//	@Param			search_term	query		string	false	"Search term (name, address, postcode)"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	params := newQueryParams(c)
	q := propertyapp.ListPropertiesQuery{
		PageRequest: params.Page(),
		Status:      params.Int("status"),
		Type:        params.Int("type"),
		SearchTerm:  params.String("search_term"),
	}
	if err := params.Err(); err != nil {
		h.HandleError(c, err)
		return
	}

	page, err := h.properties.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPagedResponse(page))
}

// Summary godoc
// @ID           getPropertySummary
//
//	@Summary		Property financial summary
//	@Description	Income, expenses and profit margin over an inclusive date range
//	@Tags			properties
//	@Produce		json
//	@Param			id		path		string	true	"Resource ID"
//	@Param			date_from	query		string	false	"Start date (YYYY-MM-DD)"
//	@Param			date_to		query		string	false	"End date (YYYY-MM-DD)"
//	@Param			currency	query		string	false	"Currency label"	default(GBP)
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/properties/{id}/summary [get]
func (h *PropertyHandler) Summary(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	params := newQueryParams(c)
	q := reportapp.GetPropertySummaryQuery{
		PropertyID: id,
		DateFrom:   params.Date("date_from"),
		DateTo:     params.Date("date_to"),
		Currency:   params.String("currency"),
	}
	if err := params.Err(); err != nil {
		h.HandleError(c, err)
		return
	}

	resp, err := h.summaries.PropertySummary(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

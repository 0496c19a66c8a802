package handler

import (
	"context"
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	expenseapp "github.com/propman/backend/internal/application/expense"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/interfaces/http/dto"
)

// attachmentFormField is the multipart field carrying the uploaded file
const attachmentFormField = "file"

// CategoryService is the application API used by CategoryHandler
type CategoryService interface {
	Get(ctx context.Context, q expenseapp.GetCategoryQuery) (*expenseapp.CategoryResponse, error)
	List(ctx context.Context, q expenseapp.ListCategoriesQuery) (shared.PagedList[expenseapp.CategoryResponse], error)
}

// ExpenseService is the application API used by ExpenseHandler
type ExpenseService interface {
	Create(ctx context.Context, cmd expenseapp.CreateExpenseCommand) (*expenseapp.ExpenseResponse, error)
	Update(ctx context.Context, cmd expenseapp.UpdateExpenseCommand) (*expenseapp.ExpenseResponse, error)
	Delete(ctx context.Context, cmd expenseapp.DeleteExpenseCommand) error
	Get(ctx context.Context, q expenseapp.GetExpenseQuery) (*expenseapp.ExpenseResponse, error)
	List(ctx context.Context, q expenseapp.ListExpensesQuery) (shared.PagedList[expenseapp.ExpenseListItem], error)

	UploadAttachment(ctx context.Context, cmd expenseapp.UploadAttachmentCommand) (*expenseapp.AttachmentResponse, error)
	ListAttachments(ctx context.Context, q expenseapp.ListAttachmentsQuery) ([]expenseapp.AttachmentResponse, error)
	DownloadAttachment(ctx context.Context, q expenseapp.DownloadAttachmentQuery) (*expenseapp.AttachmentContent, error)
	DeleteAttachment(ctx context.Context, cmd expenseapp.DeleteAttachmentCommand) error
}

// UploadRecorder counts accepted attachment bytes
type UploadRecorder interface {
	AddUploadBytes(n int64)
}

// CategoryHandler serves /expense-categories (read only; the catalogue is seeded)
type CategoryHandler struct {
	BaseHandler
	categories CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(base BaseHandler, categories CategoryService) *CategoryHandler {
	return &CategoryHandler{BaseHandler: base, categories: categories}
}

// Get godoc
// @ID           getExpenseCategoryById
//
//	@Summary		Get an expense category
//	@Tags			expense-categories
//	@Produce		json
//	@Param			id		path		string	true	"Resource ID"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/expense-categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	resp, err := h.categories.Get(c.Request.Context(), expenseapp.GetCategoryQuery{ID: id})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listExpenseCategories
//
//	@Summary		List expense categories
//	@Tags			expense-categories
//	@Produce		json
//	@Param			page_number	query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)	maximum(100)
//	@Param			is_active	query		boolean	false	"Filter by active flag"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/expense-categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	params := newQueryParams(c)
	q := expenseapp.ListCategoriesQuery{
		PageRequest: params.Page(),
		IsActive:    params.Bool("is_active"),
	}
	if err := params.Err(); err != nil {
		h.HandleError(c, err)
		return
	}
	page, err := h.categories.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPagedResponse(page))
}

// ExpenseHandler serves /expenses and their attachments
type ExpenseHandler struct {
	BaseHandler
	expenses ExpenseService
	uploads  UploadRecorder
}

// NewExpenseHandler creates a new ExpenseHandler. uploads may be nil.
func NewExpenseHandler(base BaseHandler, expenses ExpenseService, uploads UploadRecorder) *ExpenseHandler {
	return &ExpenseHandler{BaseHandler: base, expenses: expenses, uploads: uploads}
}

// Create godoc
// @ID           createExpense
//
//	@Summary		Record an expense
//	@Tags			expenses
//	@Accept			json
//	@Produce		json
//	@Param			request	body		expenseapp.CreateExpenseCommand	true	"Expense"
//	@Success		201			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var cmd expenseapp.CreateExpenseCommand
	if !h.BindJSON(c, &cmd) {
		return
	}
	resp, err := h.expenses.Create(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update godoc
// @ID           updateExpense
//
//	@Summary		Update an expense
//	@Tags			expenses
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string	true	"Resource ID"
//	@Param			request	body		expenseapp.ExpenseFields	true	"Expense"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	var fields expenseapp.ExpenseFields
	if !h.BindJSON(c, &fields) {
		return
	}
	resp, err := h.expenses.Update(c.Request.Context(), expenseapp.UpdateExpenseCommand{ID: id, ExpenseFields: fields})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteExpense
//
//	@Summary		Delete an expense and its attachments
//	@Tags			expenses
//	@Produce		json
//	@Param			id		path		string	true	"Resource ID"
//	@Success		204			"No Content"
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	if err := h.expenses.Delete(c.Request.Context(), expenseapp.DeleteExpenseCommand{ID: id}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Get godoc
// @ID           getExpenseById
//
//	@Summary		Get an expense
//	@Tags			expenses
//	@Produce		json
//	@Param			id		path		string	true	"Resource ID"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	resp, err := h.expenses.Get(c.Request.Context(), expenseapp.GetExpenseQuery{ID: id})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listExpenses
//
//	@Summary		List expenses
//	@Tags			expenses
//	@Produce		json
//	@Param			page_number	query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)	maximum(100)
//	@Param			property_id	query		string	false	"Property ID"
//	@Param			category_id	query		string	false	"Expense category ID"
//	@Param			from_date	query		string	false	"From date (YYYY-MM-DD)"
//	@Param			to_date		query		string	false	"To date (YYYY-MM-DD)"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	params := newQueryParams(c)
	q := expenseapp.ListExpensesQuery{
		PageRequest: params.Page(),
		PropertyID:  params.UUID("property_id"),
		CategoryID:  params.UUID("category_id"),
		FromDate:    params.Date("from_date"),
		ToDate:      params.Date("to_date"),
	}
	if err := params.Err(); err != nil {
		h.HandleError(c, err)
		return
	}
	page, err := h.expenses.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPagedResponse(page))
}

// UploadAttachment godoc
// @ID           uploadExpenseAttachment
//
//	@Summary		Upload an expense attachment
//	@Tags			expenses
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		string	true	"Resource ID"
//	@Param			file		formData	file	true	"Receipt or invoice"
//	@Success		201			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		413			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/expenses/{id}/attachments [post]
func (h *ExpenseHandler) UploadAttachment(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	header, err := c.FormFile(attachmentFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.bindFailed(c, err)
			return
		}
		h.ValidationFailed(c, map[string][]string{attachmentFormField: {"A file is required"}})
		return
	}
	file, err := header.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := h.expenses.UploadAttachment(c.Request.Context(), expenseapp.UploadAttachmentCommand{
		ExpenseID:   id,
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if h.uploads != nil {
		h.uploads.AddUploadBytes(resp.SizeBytes)
	}
	h.Created(c, resp)
}

// ListAttachments godoc
// @ID           listExpenseAttachments
//
//	@Summary		List expense attachments
//	@Tags			expenses
//	@Produce		json
//	@Param			id		path		string	true	"Resource ID"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/expenses/{id}/attachments [get]
func (h *ExpenseHandler) ListAttachments(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	resp, err := h.expenses.ListAttachments(c.Request.Context(), expenseapp.ListAttachmentsQuery{ExpenseID: id})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DownloadAttachment godoc
// @ID           downloadExpenseAttachment
//
//	@Summary		Download an expense attachment
//	@Tags			expenses
//	@Produce		octet-stream
//	@Param			id		path		string	true	"Resource ID"
//	@Param			attachmentId	path		string	true	"Attachment ID"
//	@Success		200			{file}	binary
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/expenses/{id}/attachments/{attachmentId} [get]
func (h *ExpenseHandler) DownloadAttachment(c *gin.Context) {
	expenseID, attachmentID, ok := h.attachmentPath(c)
	if !ok {
		return
	}
	content, err := h.expenses.DownloadAttachment(c.Request.Context(), expenseapp.DownloadAttachmentQuery{
		ExpenseID:    expenseID,
		AttachmentID: attachmentID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer content.Body.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": content.FileName})
	c.DataFromReader(http.StatusOK, content.SizeBytes, content.ContentType, content.Body, map[string]string{
		"Content-Disposition": disposition,
	})
}

// DeleteAttachment godoc
// @ID           deleteExpenseAttachment
//
//	@Summary		Delete an expense attachment
//	@Tags			expenses
//	@Produce		json
//	@Param			id		path		string	true	"Resource ID"
//	@Param			attachmentId	path		string	true	"Attachment ID"
//	@Success		204			"No Content"
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/expenses/{id}/attachments/{attachmentId} [delete]
func (h *ExpenseHandler) DeleteAttachment(c *gin.Context) {
	expenseID, attachmentID, ok := h.attachmentPath(c)
	if !ok {
		return
	}
	err := h.expenses.DeleteAttachment(c.Request.Context(), expenseapp.DeleteAttachmentCommand{
		ExpenseID:    expenseID,
		AttachmentID: attachmentID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ExpenseHandler) attachmentPath(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	var req dto.AttachmentIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.bindFailed(c, err)
		return uuid.Nil, uuid.Nil, false
	}
	return uuid.MustParse(req.ID), uuid.MustParse(req.AttachmentID), true
}

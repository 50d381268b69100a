package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appsales "github.com/pos/backend/internal/application/sales"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/sales"
)

// TransactionHandler handles sales transaction endpoints
type TransactionHandler struct {
	BaseHandler
	transactionService *appsales.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *appsales.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// Create handles POST /api/v1/transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	tctx, ok := h.tenantContext(c)
	if !ok {
		return
	}

	var input appsales.CreateTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}

	transaction, err := h.transactionService.Create(c.Request.Context(), tctx, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, transaction)
}

// Get handles GET /api/v1/transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	tctx, ok := h.tenantContext(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	transaction, err := h.transactionService.GetByID(c.Request.Context(), tctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, transaction)
}

// GetByNumber handles GET /api/v1/transactions/number/:number
func (h *TransactionHandler) GetByNumber(c *gin.Context) {
	tctx, ok := h.tenantContext(c)
	if !ok {
		return
	}
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Missing transaction number")
		return
	}

	transaction, err := h.transactionService.GetByNumber(c.Request.Context(), tctx, number)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, transaction)
}

type listTransactionsRequest struct {
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status        string `form:"status" binding:"omitempty,oneof=PENDING COMPLETED CANCELLED REFUNDED"`
	PaymentMethod string `form:"payment_method"`
	UserID        string `form:"user_id" binding:"omitempty,uuid"`
	CustomerID    string `form:"customer_id" binding:"omitempty,uuid"`
	DateFrom      string `form:"date_from"`
	DateTo        string `form:"date_to"`
}

// List handles GET /api/v1/transactions
func (h *TransactionHandler) List(c *gin.Context) {
	tctx, ok := h.tenantContext(c)
	if !ok {
		return
	}

	var req listTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	input := appsales.ListTransactionsInput{
		Page:          req.Page,
		PageSize:      req.PageSize,
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
	}
	if req.UserID != "" {
		id, err := uuid.Parse(req.UserID)
		if err != nil {
			h.BadRequest(c, "Invalid user_id")
			return
		}
		input.UserID = &id
	}
	if req.CustomerID != "" {
		id, err := uuid.Parse(req.CustomerID)
		if err != nil {
			h.BadRequest(c, "Invalid customer_id")
			return
		}
		input.CustomerID = &id
	}
	if req.DateFrom != "" {
		from, err := time.Parse("2006-01-02", req.DateFrom)
		if err != nil {
			h.BadRequest(c, "Invalid date_from, expected YYYY-MM-DD")
			return
		}
		input.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			h.BadRequest(c, "Invalid date_to, expected YYYY-MM-DD")
			return
		}
		input.DateTo = &to
	}

	page, err := h.transactionService.List(c.Request.Context(), tctx, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update handles PATCH /api/v1/transactions/:id
func (h *TransactionHandler) Update(c *gin.Context) {
	tctx, ok := h.tenantContext(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var input appsales.UpdateTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}

	transaction, err := h.transactionService.Update(c.Request.Context(), tctx, id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, transaction)
}

// Complete handles POST /api/v1/transactions/:id/complete
func (h *TransactionHandler) Complete(c *gin.Context) {
	h.transition(c, h.transactionService.Complete)
}

// Cancel handles POST /api/v1/transactions/:id/cancel
func (h *TransactionHandler) Cancel(c *gin.Context) {
	h.transition(c, h.transactionService.Cancel)
}

// Refund handles POST /api/v1/transactions/:id/refund
func (h *TransactionHandler) Refund(c *gin.Context) {
	h.transition(c, h.transactionService.Refund)
}

func (h *TransactionHandler) transition(c *gin.Context, op func(ctx context.Context, tctx identity.TenantContext, id uuid.UUID) (*sales.Transaction, error)) {
	tctx, ok := h.tenantContext(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	result, err := op(c.Request.Context(), tctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RegisterRoutes registers transaction routes on the tenant-scoped group
func (h *TransactionHandler) RegisterRoutes(scoped *gin.RouterGroup) {
	transactions := scoped.Group("/transactions")
	{
		transactions.POST("", h.Create)
		transactions.GET("", h.List)
		transactions.GET("/number/:number", h.GetByNumber)
		transactions.GET("/:id", h.Get)
		transactions.PATCH("/:id", h.Update)
		transactions.POST("/:id/complete", h.Complete)
		transactions.POST("/:id/cancel", h.Cancel)
		transactions.POST("/:id/refund", h.Refund)
	}
}

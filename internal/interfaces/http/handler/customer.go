package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/pos/backend/internal/application/catalog"
)

// CustomerHandler handles customer directory endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *appcatalog.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *appcatalog.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create handles POST /api/v1/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	tctx, ok := h.tenantContext(c)
	if !ok {
		return
	}

	var input appcatalog.CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), tctx, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// Get handles GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	tctx, ok := h.tenantContext(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	customer, err := h.customerService.Get(c.Request.Context(), tctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// List handles GET /api/v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	tctx, ok := h.tenantContext(c)
	if !ok {
		return
	}
	filter, ok := h.parseListRequest(c)
	if !ok {
		return
	}

	page, err := h.customerService.List(c.Request.Context(), tctx, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update handles PUT /api/v1/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	tctx, ok := h.tenantContext(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var input appcatalog.UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), tctx, id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Delete handles DELETE /api/v1/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	tctx, ok := h.tenantContext(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), tctx, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers customer routes on the tenant-scoped group
func (h *CustomerHandler) RegisterRoutes(scoped *gin.RouterGroup) {
	customers := scoped.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.List)
		customers.GET("/:id", h.Get)
		customers.PUT("/:id", h.Update)
		customers.DELETE("/:id", h.Delete)
	}
}

package handler

import (
	"github.com/gin-gonic/gin"

	appidentity "github.com/pos/backend/internal/application/identity"
)

// TenantHandler handles tenant registration and administration endpoints
type TenantHandler struct {
	BaseHandler
	tenantService *appidentity.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *appidentity.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// Register handles POST /api/v1/tenants
func (h *TenantHandler) Register(c *gin.Context) {
	var input appidentity.CreateTenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}

	tenant, err := h.tenantService.Register(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tenant)
}

// Current handles GET /api/v1/tenant
func (h *TenantHandler) Current(c *gin.Context) {
	tctx, ok := h.tenantContext(c)
	if !ok {
		return
	}

	tenant, err := h.tenantService.GetBySlug(c.Request.Context(), tctx.TenantSlug)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tenant)
}

type updateBusinessInfoRequest struct {
	BusinessType    string `json:"business_type" binding:"max=100"`
	BusinessAddress string `json:"business_address"`
	BusinessPhone   string `json:"business_phone" binding:"max=50"`
	BusinessEmail   string `json:"business_email" binding:"omitempty,email,max=200"`
}

// UpdateBusinessInfo handles PUT /api/v1/tenant
func (h *TenantHandler) UpdateBusinessInfo(c *gin.Context) {
	tctx, ok := h.tenantContext(c)
	if !ok {
		return
	}

	var req updateBusinessInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	tenant, err := h.tenantService.UpdateBusinessInfo(c.Request.Context(), tctx,
		req.BusinessType, req.BusinessAddress, req.BusinessPhone, req.BusinessEmail)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tenant)
}

// Deactivate handles DELETE /api/v1/tenant
func (h *TenantHandler) Deactivate(c *gin.Context) {
	tctx, ok := h.tenantContext(c)
	if !ok {
		return
	}

	if err := h.tenantService.Deactivate(c.Request.Context(), tctx); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterPublicRoutes registers the unauthenticated tenant routes
func (h *TenantHandler) RegisterPublicRoutes(public *gin.RouterGroup) {
	public.POST("/tenants", h.Register)
}

// RegisterRoutes registers the tenant-scoped routes
func (h *TenantHandler) RegisterRoutes(scoped *gin.RouterGroup) {
	scoped.GET("/tenant", h.Current)
	scoped.PUT("/tenant", h.UpdateBusinessInfo)
	scoped.DELETE("/tenant", h.Deactivate)
}

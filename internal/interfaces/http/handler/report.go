package handler

import (
	"github.com/gin-gonic/gin"

	appsales "github.com/pos/backend/internal/application/sales"
)

// ReportHandler handles read-only reporting endpoints
type ReportHandler struct {
	BaseHandler
	transactionService *appsales.TransactionService
}

// NewReportHandler creates a new report handler
func NewReportHandler(transactionService *appsales.TransactionService) *ReportHandler {
	return &ReportHandler{transactionService: transactionService}
}

// TodaySales handles GET /api/v1/reports/today
func (h *ReportHandler) TodaySales(c *gin.Context) {
	tctx, ok := h.tenantContext(c)
	if !ok {
		return
	}

	summary, err := h.transactionService.TodaySummary(c.Request.Context(), tctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// RegisterRoutes registers report routes on the tenant-scoped group
func (h *ReportHandler) RegisterRoutes(scoped *gin.RouterGroup) {
	reports := scoped.Group("/reports")
	{
		reports.GET("/today", h.TodaySales)
	}
}

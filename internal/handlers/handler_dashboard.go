package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
	"github.com/SscSPs/hk_loans_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvcFacade) {
	h := &dashboardHandler{dashboardService: dashboardService}

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/summary", h.summary)
		dashboard.GET("/alerts", h.alerts)
	}
}

// summary godoc
// @Summary Portfolio summary
// @Description Invested, receivable, late and received totals, computed on each request
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardSummaryResponse
// @Security BearerAuth
// @Router /dashboard/summary [get]
func (h *dashboardHandler) summary(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	summary, err := h.dashboardService.Summary(c.Request.Context(), tenant)
	if err != nil {
		respondWithError(c, err, "Failed to compute summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardSummaryResponse(summary))
}

// alerts godoc
// @Summary Due and overdue installments
// @Description Pending installments due today and overdue ones
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.AlertsResponse
// @Security BearerAuth
// @Router /dashboard/alerts [get]
func (h *dashboardHandler) alerts(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	alerts, err := h.dashboardService.Alerts(c.Request.Context(), tenant)
	if err != nil {
		respondWithError(c, err, "Failed to compute alerts")
		return
	}
	c.JSON(http.StatusOK, dto.ToAlertsResponse(alerts))
}

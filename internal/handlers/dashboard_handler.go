package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"budgetdash/internal/finance"
	"budgetdash/internal/services"
)

// DashboardHandler serves the monthly dashboard.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
	now              Clock
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer, now Clock) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, now: now}
}

// GetDashboard handles building the dashboard of one month.
// @Summary     Get dashboard
// @Description Totals, change against the previous month, expenses by category, budgets, recent transactions and a six-month trend
// @Tags        dashboard
// @Produce     json
// @Security    ApiKeyAuth
// @Param       month query string false "Month (YYYY-MM), defaults to the current month"
// @Success     200 {object} finance.DashboardSummary "Dashboard"
// @Failure     400 {object} ErrorResponse "Malformed month"
// @Failure     404 {object} ErrorResponse "Budget category missing"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	ref := h.now()

	month, err := parseMonthQuery(c, "month")
	if err != nil {
		respondWithError(c, err)
		return
	}
	target := finance.MonthKeyOf(ref)
	if month != nil {
		target = *month
	}

	summary, err := h.dashboardService.GetDashboard(target, ref)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

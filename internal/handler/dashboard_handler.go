package handler

import (
	"net/http"

	"ledger-service/internal/ledger"
	"ledger-service/internal/service"

	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
}

func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary handles GET /api/dashboard?period=daily|monthly|yearly. Without a
// period the daily view is shown.
func (h *DashboardHandler) Summary(c echo.Context) error {
	period := ledger.PeriodDaily
	if raw := c.QueryParam("period"); raw != "" {
		period = ledger.ParsePeriod(raw)
	}

	summary, err := h.dashboard.Summary(c.Request().Context(), ownerID(c), period)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(http.StatusOK, summary)
}

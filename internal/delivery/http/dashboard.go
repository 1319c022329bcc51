package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"invest-research/internal/dto"
)

func (h *HttpAPIHandler) SetupDashboard(v1 *echo.Group) {
	dashboard := v1.Group("/dashboard")
	{
		dashboard.GET("/stats", h.DashboardStats)
	}
}

func (h *HttpAPIHandler) DashboardStats(c echo.Context) error {
	stats, err := h.service.DashboardService.Stats(c.Request().Context())
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("dashboard stats", stats))
}

package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"invest-research/internal/dto"
	"invest-research/internal/repository"
)

func (h *HttpAPIHandler) SetupPortfolio(v1 *echo.Group) {
	portfolio := v1.Group("/portfolio")
	{
		portfolio.GET("/holdings", h.ListHoldings)
		portfolio.POST("/holdings", h.CreateHolding)
		portfolio.PUT("/holdings/:id", h.UpdateHolding)
		portfolio.DELETE("/holdings/:id", h.DeleteHolding)

		portfolio.GET("/allocation", h.GetAllocation)

		portfolio.POST("/scan", h.StartPortfolioScan)
		portfolio.GET("/scans", h.ListPortfolioScans)
		portfolio.GET("/scans/:id", h.GetPortfolioScan)

		portfolio.GET("/alerts", h.ListAlerts)
		portfolio.PATCH("/alerts/:id", h.UpdateAlert)
		portfolio.POST("/alerts/read-all", h.MarkAllAlertsRead)
	}
}

func (h *HttpAPIHandler) ListHoldings(c echo.Context) error {
	holdings, err := h.service.PortfolioService.ListHoldings(c.Request().Context())
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("holdings", holdings))
}

func (h *HttpAPIHandler) CreateHolding(c echo.Context) error {
	var req dto.HoldingRequest
	if !h.bindAndValidate(c, &req) {
		return nil
	}

	holding, err := h.service.PortfolioService.CreateHolding(c.Request().Context(), &req)
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewBaseResponse(http.StatusCreated, "holding created", holding))
}

func (h *HttpAPIHandler) UpdateHolding(c echo.Context) error {
	var req dto.HoldingRequest
	if !h.bindAndValidate(c, &req) {
		return nil
	}

	holding, err := h.service.PortfolioService.UpdateHolding(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("holding updated", holding))
}

func (h *HttpAPIHandler) DeleteHolding(c echo.Context) error {
	if err := h.service.PortfolioService.DeleteHolding(c.Request().Context(), c.Param("id")); err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("holding deleted", nil))
}

func (h *HttpAPIHandler) GetAllocation(c echo.Context) error {
	allocation, err := h.service.PortfolioService.Allocation(c.Request().Context())
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("allocation", allocation))
}

func (h *HttpAPIHandler) StartPortfolioScan(c echo.Context) error {
	scan, err := h.service.PortfolioService.StartScan(c.Request().Context())
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewBaseResponse(http.StatusCreated, "portfolio scan started", scan))
}

func (h *HttpAPIHandler) ListPortfolioScans(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	scans, err := h.service.PortfolioService.ListScans(c.Request().Context(), limit)
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("portfolio scans", scans))
}

func (h *HttpAPIHandler) GetPortfolioScan(c echo.Context) error {
	scan, err := h.service.PortfolioService.GetScan(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("portfolio scan", scan))
}

func (h *HttpAPIHandler) ListAlerts(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	filter := repository.AlertFilter{
		Status:   c.QueryParam("status"),
		Severity: c.QueryParam("severity"),
		Limit:    limit,
	}
	alerts, err := h.service.PortfolioService.ListAlerts(c.Request().Context(), filter)
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("alerts", alerts))
}

func (h *HttpAPIHandler) UpdateAlert(c echo.Context) error {
	var req dto.UpdateAlertRequest
	if !h.bindAndValidate(c, &req) {
		return nil
	}

	alert, err := h.service.PortfolioService.UpdateAlertStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("alert updated", alert))
}

func (h *HttpAPIHandler) MarkAllAlertsRead(c echo.Context) error {
	updated, err := h.service.PortfolioService.MarkAllAlertsRead(c.Request().Context())
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("alerts marked read", map[string]int64{"updated": updated}))
}

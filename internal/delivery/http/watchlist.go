package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"invest-research/internal/dto"
)

func (h *HttpAPIHandler) SetupWatchlist(v1 *echo.Group) {
	watchlist := v1.Group("/watchlist")
	{
		watchlist.GET("", h.ListWatchlist)
		watchlist.POST("", h.AddWatchlistItem)
		watchlist.PATCH("/:id", h.UpdateWatchlistItem)
		watchlist.DELETE("/:id", h.DeleteWatchlistItem)

		watchlist.POST("/scan", h.StartWatchlistScan)
		watchlist.GET("/scans", h.ListWatchlistScans)
		watchlist.GET("/scans/:id", h.GetWatchlistScan)
	}
}

func (h *HttpAPIHandler) ListWatchlist(c echo.Context) error {
	items, err := h.service.WatchlistService.List(c.Request().Context())
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("watchlist", items))
}

func (h *HttpAPIHandler) AddWatchlistItem(c echo.Context) error {
	var req dto.WatchlistItemRequest
	if !h.bindAndValidate(c, &req) {
		return nil
	}

	item, err := h.service.WatchlistService.Add(c.Request().Context(), &req)
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewBaseResponse(http.StatusCreated, "watchlist item added", item))
}

func (h *HttpAPIHandler) UpdateWatchlistItem(c echo.Context) error {
	var req dto.UpdateWatchlistItemRequest
	if !h.bindAndValidate(c, &req) {
		return nil
	}

	item, err := h.service.WatchlistService.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("watchlist item updated", item))
}

func (h *HttpAPIHandler) DeleteWatchlistItem(c echo.Context) error {
	if err := h.service.WatchlistService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("watchlist item deleted", nil))
}

func (h *HttpAPIHandler) StartWatchlistScan(c echo.Context) error {
	scan, err := h.service.WatchlistService.StartScan(c.Request().Context())
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewBaseResponse(http.StatusCreated, "watchlist scan started", scan))
}

func (h *HttpAPIHandler) ListWatchlistScans(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	scans, err := h.service.WatchlistService.ListScans(c.Request().Context(), limit)
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("watchlist scans", scans))
}

func (h *HttpAPIHandler) GetWatchlistScan(c echo.Context) error {
	scan, err := h.service.WatchlistService.GetScan(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("watchlist scan", scan))
}

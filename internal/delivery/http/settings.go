package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"invest-research/internal/dto"
)

func (h *HttpAPIHandler) SetupSettings(v1 *echo.Group) {
	settings := v1.Group("/settings")
	{
		settings.GET("", h.GetSettings)
		settings.PUT("", h.UpdateSettings)
	}
}

func (h *HttpAPIHandler) GetSettings(c echo.Context) error {
	settings, err := h.service.SettingsService.Get(c.Request().Context())
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("settings", settings))
}

func (h *HttpAPIHandler) UpdateSettings(c echo.Context) error {
	var req dto.SettingsRequest
	if !h.bindAndValidate(c, &req) {
		return nil
	}

	settings, err := h.service.SettingsService.Update(c.Request().Context(), &req)
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("settings updated", settings))
}

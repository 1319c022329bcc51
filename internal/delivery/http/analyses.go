package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"invest-research/internal/dto"
)

func (h *HttpAPIHandler) SetupAnalyses(v1 *echo.Group) {
	analyses := v1.Group("/analyses")
	{
		analyses.GET("", h.ListAnalyses)
		analyses.POST("", h.StartAnalysis)
		analyses.GET("/:id", h.GetAnalysis)
		analyses.PATCH("/:id", h.UpdateAnalysis)
		analyses.DELETE("/:id", h.DeleteAnalysis)
		analyses.POST("/:id/refresh", h.RefreshAnalysis)
	}
}

func (h *HttpAPIHandler) ListAnalyses(c echo.Context) error {
	analyses, err := h.service.AnalysisService.List(c.Request().Context())
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("analyses", analyses))
}

func (h *HttpAPIHandler) StartAnalysis(c echo.Context) error {
	var req dto.StartAnalysisRequest
	if !h.bindAndValidate(c, &req) {
		return nil
	}

	analysis, err := h.service.AnalysisService.Start(c.Request().Context(), req.Ticker)
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewBaseResponse(http.StatusCreated, "analysis started", analysis))
}

func (h *HttpAPIHandler) GetAnalysis(c echo.Context) error {
	analysis, err := h.service.AnalysisService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("analysis", analysis))
}

func (h *HttpAPIHandler) UpdateAnalysis(c echo.Context) error {
	var req dto.UpdateAnalysisRequest
	if !h.bindAndValidate(c, &req) {
		return nil
	}

	analysis, err := h.service.AnalysisService.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("analysis updated", analysis))
}

func (h *HttpAPIHandler) DeleteAnalysis(c echo.Context) error {
	if err := h.service.AnalysisService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("analysis deleted", nil))
}

func (h *HttpAPIHandler) RefreshAnalysis(c echo.Context) error {
	var req dto.RefreshAnalysisRequest
	if !h.bindAndValidate(c, &req) {
		return nil
	}

	analysis, err := h.service.AnalysisService.Refresh(c.Request().Context(), c.Param("id"), req.Notes)
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("analysis refresh started", analysis))
}

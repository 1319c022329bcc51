package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"invest-research/internal/dto"
)

func (h *HttpAPIHandler) SetupDecisions(v1 *echo.Group) {
	decisions := v1.Group("/decisions")
	{
		decisions.GET("", h.ListDecisions)
		decisions.POST("", h.CreateDecision)
		decisions.PUT("/:id", h.UpdateDecision)
		decisions.DELETE("/:id", h.DeleteDecision)
		decisions.GET("/patterns", h.DecisionPatterns)
	}
}

func (h *HttpAPIHandler) ListDecisions(c echo.Context) error {
	decisions, err := h.service.DecisionService.List(c.Request().Context())
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("decisions", decisions))
}

func (h *HttpAPIHandler) CreateDecision(c echo.Context) error {
	var req dto.DecisionRequest
	if !h.bindAndValidate(c, &req) {
		return nil
	}

	decision, err := h.service.DecisionService.Create(c.Request().Context(), &req)
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewBaseResponse(http.StatusCreated, "decision recorded", decision))
}

func (h *HttpAPIHandler) UpdateDecision(c echo.Context) error {
	var req dto.DecisionRequest
	if !h.bindAndValidate(c, &req) {
		return nil
	}

	decision, err := h.service.DecisionService.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("decision updated", decision))
}

func (h *HttpAPIHandler) DeleteDecision(c echo.Context) error {
	if err := h.service.DecisionService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("decision deleted", nil))
}

func (h *HttpAPIHandler) DecisionPatterns(c echo.Context) error {
	patterns, err := h.service.DecisionService.Patterns(c.Request().Context())
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("decision patterns", patterns))
}

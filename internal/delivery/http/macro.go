package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"invest-research/internal/dto"
)

func (h *HttpAPIHandler) SetupMacro(v1 *echo.Group) {
	macro := v1.Group("/macro")
	{
		macro.GET("", h.ListMacroReports)
		macro.POST("", h.StartMacroScan)
		macro.GET("/latest", h.LatestMacroReport)
		macro.GET("/:id", h.GetMacroReport)
		macro.POST("/:id/chat", h.MacroChat)
		macro.POST("/:id/simplify", h.SimplifyMacroReport)
	}
}

func (h *HttpAPIHandler) ListMacroReports(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	reports, err := h.service.MacroService.List(c.Request().Context(), limit)
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("macro reports", reports))
}

func (h *HttpAPIHandler) StartMacroScan(c echo.Context) error {
	report, err := h.service.MacroService.Start(c.Request().Context())
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewBaseResponse(http.StatusCreated, "macro scan started", report))
}

func (h *HttpAPIHandler) LatestMacroReport(c echo.Context) error {
	report, err := h.service.MacroService.Latest(c.Request().Context())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusOK, dto.NewSuccessResponse("no macro report yet", nil))
		}
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("macro report", report))
}

func (h *HttpAPIHandler) MacroChat(c echo.Context) error {
	var req dto.MacroChatRequest
	if !h.bindAndValidate(c, &req) {
		return nil
	}

	answer, err := h.service.MacroService.Chat(c.Request().Context(), c.Param("id"), req.Question, req.History)
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("macro chat", map[string]string{"answer": answer}))
}

func (h *HttpAPIHandler) SimplifyMacroReport(c echo.Context) error {
	simplified, err := h.service.MacroService.Simplify(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("macro report simplified", map[string]string{"simplified": simplified}))
}

func (h *HttpAPIHandler) GetMacroReport(c echo.Context) error {
	report, err := h.service.MacroService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("macro report", report))
}

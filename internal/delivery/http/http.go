package http

import (
	"errors"
	"net/http"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"invest-research/internal/dto"
	"invest-research/internal/service"
	"invest-research/pkg/logger"
	"invest-research/pkg/session"
)

type HttpAPIHandler struct {
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
	session   *session.Manager
	log       *logger.Logger
}

func NewHttpAPIHandler(e *echo.Echo, validator *goValidator.Validate, svc *service.Service, sessions *session.Manager, log *logger.Logger) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      e,
		validator: validator,
		service:   svc,
		session:   sessions,
		log:       log,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	h.echo.GET("/healthz", h.Healthz)

	base := h.echo.Group("/api")
	h.SetupAuth(base)

	v1 := base.Group("/v1", h.RequireSession)
	h.SetupAnalyses(v1)
	h.SetupMacro(v1)
	h.SetupPortfolio(v1)
	h.SetupWatchlist(v1)
	h.SetupDecisions(v1)
	h.SetupSettings(v1)
	h.SetupDashboard(v1)
}

func (h *HttpAPIHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", nil))
}

// bindAndValidate decodes the JSON body into req and runs its validation
// tags. A false return means the 400 response is already written.
func (h *HttpAPIHandler) bindAndValidate(c echo.Context, req interface{}) bool {
	if err := c.Bind(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
		return false
	}
	return true
}

// errorJSON maps service errors onto HTTP statuses.
func (h *HttpAPIHandler) errorJSON(c echo.Context, err error) error {
	var inProgress *service.ErrScanInProgress
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "not found", nil))
	case errors.As(err, &inProgress):
		return c.JSON(http.StatusConflict, dto.NewBaseResponse(http.StatusConflict, err.Error(),
			map[string]string{"scan_id": inProgress.ScanID}))
	case errors.Is(err, service.ErrAnalysisInProgress),
		errors.Is(err, service.ErrTickerAlreadyWatched):
		return c.JSON(http.StatusConflict, dto.NewBaseResponse(http.StatusConflict, err.Error(), nil))
	case errors.Is(err, service.ErrMissingSearchData),
		errors.Is(err, service.ErrReportNotComplete),
		errors.Is(err, service.ErrNoActiveHoldings),
		errors.Is(err, service.ErrEmptyWatchlist):
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	default:
		h.log.ErrorContext(c.Request().Context(), "request failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "internal server error", nil))
	}
}

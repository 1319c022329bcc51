package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"invest-research/internal/dto"
	"invest-research/pkg/middleware"
	"invest-research/pkg/session"
)

func (h *HttpAPIHandler) SetupAuth(base *echo.Group) {
	auth := base.Group("/auth")
	{
		auth.POST("/login", h.Login, middleware.NewLoginRateLimiter())
		auth.POST("/logout", h.Logout)
	}
}

func (h *HttpAPIHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if !h.bindAndValidate(c, &req) {
		return nil
	}

	if !h.session.VerifyPassword(req.Password) {
		return c.JSON(http.StatusUnauthorized, dto.NewBaseResponse(http.StatusUnauthorized, "invalid password", nil))
	}

	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    h.session.CreateToken(),
		Path:     "/",
		MaxAge:   int(h.session.Duration() / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("logged in", nil))
}

func (h *HttpAPIHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("logged out", nil))
}

// RequireSession gates every /api/v1 route behind the session cookie.
func (h *HttpAPIHandler) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(session.CookieName)
		if err != nil || !h.session.VerifyToken(cookie.Value) {
			return c.JSON(http.StatusUnauthorized, dto.NewBaseResponse(http.StatusUnauthorized, "authentication required", nil))
		}
		return next(c)
	}
}

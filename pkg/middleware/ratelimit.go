package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

type rateLimitResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewLoginRateLimiter throttles password attempts per client IP. The gate is
// a single shared password, so brute forcing it must stay slow.
func NewLoginRateLimiter() echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Every(2 * time.Second),
				Burst:     5,
				ExpiresIn: 10 * time.Minute,
			},
		),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, rateLimitResponse{
				Code:    http.StatusForbidden,
				Message: "cannot identify client",
			})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, rateLimitResponse{
				Code:    http.StatusTooManyRequests,
				Message: "too many login attempts, try again later",
			})
		},
	}

	return middleware.RateLimiterWithConfig(config)
}

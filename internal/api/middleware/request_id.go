package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/safecall/crm-console/internal/infrastructure/backend"
)

// ForwardRequestID copies the request id assigned by echo's RequestID
// middleware into the request context so backend calls carry it.
func ForwardRequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Request().Header.Get(echo.HeaderXRequestID)
			}
			if id != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(backend.WithRequestID(req.Context(), id)))
			}
			return next(c)
		}
	}
}

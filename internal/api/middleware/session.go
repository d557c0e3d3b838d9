package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

// UserKey is the echo context key holding the logged-in domain.User.
const UserKey = "user"

// Session requires an active console session and injects the principal into
// context. The principal is loaded from the backend when the session was
// restored without one.
func Session(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			info, err := auth.Current(c.Request().Context())
			if err != nil {
				return err
			}
			c.Set(UserKey, info.User)
			return next(c)
		}
	}
}

// CurrentUser returns the principal injected by Session.
func CurrentUser(c echo.Context) (domain.User, bool) {
	u, ok := c.Get(UserKey).(domain.User)
	return u, ok
}

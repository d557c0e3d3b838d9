package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/safecall/crm-console/internal/core/ports"
)

type SessionHandler struct {
	authService ports.AuthService
	dashboard   ports.DashboardService
}

func NewSessionHandler(authService ports.AuthService, dashboard ports.DashboardService) *SessionHandler {
	return &SessionHandler{authService: authService, dashboard: dashboard}
}

// Login opens the console session.
//
// @Summary      Login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  ports.SessionInfo
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	info, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, info)
}

// Logout clears the stored credentials and the cached dashboard.
//
// @Summary      Logout
// @Tags         session
// @Success      204
// @Failure      500   {object}  errorResponse
// @Router       /api/session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	user, err := h.authService.Logout(c.Request().Context())
	if err != nil {
		return err
	}
	if user != nil {
		h.dashboard.Forget(dashboardKey(*user))
	}
	return c.NoContent(http.StatusNoContent)
}

// Current returns the principal with its navigation and action hints.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200   {object}  ports.SessionInfo
// @Failure      401   {object}  errorResponse
// @Router       /api/session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	info, err := h.authService.Current(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, info)
}

// VerifyPassword re-checks the current user's password.
//
// @Summary      Re-verify password
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      verifyPasswordRequest  true  "Password"
// @Success      200   {object}  verifyPasswordResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/session/verify-password [post]
func (h *SessionHandler) VerifyPassword(c echo.Context) error {
	var req verifyPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ok, err := h.authService.VerifyPassword(c.Request().Context(), req.Password)
	if err != nil {
		return formFailure(err, &req)
	}
	return c.JSON(http.StatusOK, verifyPasswordResponse{Valid: ok})
}

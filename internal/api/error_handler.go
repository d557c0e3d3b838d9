package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/safecall/crm-console/internal/api/handler"
	"github.com/safecall/crm-console/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error     string `json:"error"`
	Submitted any    `json:"submitted,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to HTTP status codes.
//   - Echoes the rejected payload back on validation failures.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (router 404, 405, bad path params).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	code, level := http.StatusInternalServerError, zerolog.ErrorLevel
	switch {
	case errors.Is(err, domain.ErrStaleView):
		code, level = http.StatusConflict, zerolog.DebugLevel
	case errors.Is(err, domain.ErrUnauthenticated):
		code, level = http.StatusUnauthorized, zerolog.InfoLevel
	case errors.Is(err, domain.ErrForbidden):
		code, level = http.StatusForbidden, zerolog.WarnLevel
	case errors.Is(err, domain.ErrValidation):
		code, level = http.StatusUnprocessableEntity, zerolog.InfoLevel
	case errors.Is(err, domain.ErrNotFound):
		code, level = http.StatusNotFound, zerolog.InfoLevel
	case errors.Is(err, domain.ErrUnavailable):
		code, level = http.StatusBadGateway, zerolog.WarnLevel
	}

	log.WithLevel(level).
		Err(err).
		Int("status", code).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("request failed")

	if code == http.StatusInternalServerError {
		return code, errorResponse{Error: "internal server error"}
	}

	resp := errorResponse{Error: err.Error()}
	var fe *handler.FormError
	if errors.As(err, &fe) {
		resp.Submitted = fe.Submitted
	}
	return code, resp
}

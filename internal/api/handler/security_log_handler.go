package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

type SecurityLogHandler struct {
	logs ports.SecurityLogService
}

func NewSecurityLogHandler(logs ports.SecurityLogService) *SecurityLogHandler {
	return &SecurityLogHandler{logs: logs}
}

// List returns security log entries, optionally filtered by event type or
// restricted to failed attempts.
//
// @Summary      Security logs
// @Tags         security
// @Produce      json
// @Param        event_type   query     string  false  "Event type"  Enums(Login, Data Access, Failed Attempt)
// @Param        failed_only  query     bool    false  "Only failed attempts"
// @Success      200          {object}  listResponse[domain.SecurityLog]
// @Failure      403          {object}  errorResponse
// @Failure      422          {object}  errorResponse
// @Router       /api/security-logs [get]
func (h *SecurityLogHandler) List(c echo.Context) error {
	var q securityLogQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	logs, err := h.logs.List(c.Request().Context(), ports.SecurityLogFilter{
		EventType:  domain.SecurityEvent(q.EventType),
		FailedOnly: q.FailedOnly,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(logs))
}

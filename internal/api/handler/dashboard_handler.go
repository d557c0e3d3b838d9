package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

type DashboardHandler struct {
	dashboard ports.DashboardService
	stats     ports.StatsService
}

func NewDashboardHandler(dashboard ports.DashboardService, stats ports.StatsService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, stats: stats}
}

// dashboardKey scopes dashboard loads to the viewing user.
func dashboardKey(u domain.User) string {
	return "dashboard:" + strconv.Itoa(u.ID)
}

// Dashboard returns the landing view. Each section carries its own error.
//
// @Summary      General dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  ports.Dashboard
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	d, err := h.dashboard.Load(c.Request().Context(), dashboardKey(user))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

// SupervisorStats returns system totals and per-agent performance.
//
// @Summary      Supervisor statistics
// @Tags         dashboard
// @Produce      json
// @Param        source  query     string  false  "Data source"  Enums(backend, local)
// @Success      200     {object}  domain.SupervisorStats
// @Failure      403     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Failure      502     {object}  errorResponse
// @Router       /api/supervisor/stats [get]
func (h *DashboardHandler) SupervisorStats(c echo.Context) error {
	var q statsQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	stats, err := h.stats.Supervisor(c.Request().Context(), ports.StatsSource(q.Source))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

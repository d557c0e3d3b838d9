package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/safecall/crm-console/internal/api/handler"
	"github.com/safecall/crm-console/internal/api/middleware"
	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
	"github.com/safecall/crm-console/internal/infrastructure/http/handlers"
)

// Services are the use cases mounted by the router.
type Services struct {
	Auth         ports.AuthService
	Dashboard    ports.DashboardService
	Stats        ports.StatsService
	Tickets      ports.TicketService
	Calls        ports.CallService
	Customers    ports.CustomerService
	Campaigns    ports.CampaignService
	Users        ports.UserService
	SecurityLogs ports.SecurityLogService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, readiness *handlers.ReadinessHandler, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.ForwardRequestID())
	e.Use(requestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "crm_console",
		Subsystem:  "gateway",
		Registerer: prometheus.DefaultRegisterer,
		Skipper:    skipInfra,
	}))

	// --- Probes, metrics and docs (no session required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", readiness.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	sessionHandler := handler.NewSessionHandler(svc.Auth, svc.Dashboard)
	dashboardHandler := handler.NewDashboardHandler(svc.Dashboard, svc.Stats)
	ticketHandler := handler.NewTicketHandler(svc.Tickets)
	callHandler := handler.NewCallHandler(svc.Calls)
	customerHandler := handler.NewCustomerHandler(svc.Customers)
	campaignHandler := handler.NewCampaignHandler(svc.Campaigns)
	userHandler := handler.NewUserHandler(svc.Users)
	securityLogHandler := handler.NewSecurityLogHandler(svc.SecurityLogs)

	supervisor := middleware.RequireRole(domain.RoleSupervisor)
	admin := middleware.RequireRole(domain.RoleAdmin)

	api := e.Group("/api")

	// --- Session ---
	api.POST("/session/login", sessionHandler.Login)
	api.POST("/session/logout", sessionHandler.Logout)
	api.GET("/session", sessionHandler.Current)

	authed := api.Group("", middleware.Session(svc.Auth))
	authed.POST("/session/verify-password", sessionHandler.VerifyPassword)

	// --- Dashboards ---
	authed.GET("/dashboard", dashboardHandler.Dashboard)
	authed.GET("/supervisor/stats", dashboardHandler.SupervisorStats, supervisor)

	// --- Tickets ---
	authed.GET("/tickets", ticketHandler.List)
	authed.POST("/tickets", ticketHandler.Create)
	authed.GET("/tickets/:id", ticketHandler.Get)
	authed.PATCH("/tickets/:id", ticketHandler.Update)
	authed.DELETE("/tickets/:id", ticketHandler.Delete, supervisor)

	// --- Calls ---
	authed.GET("/calls", callHandler.History)
	authed.POST("/calls", callHandler.Create)
	authed.GET("/calls/:id", callHandler.Get)
	authed.PATCH("/calls/:id", callHandler.Update)
	authed.DELETE("/calls/:id", callHandler.Delete, supervisor)
	authed.GET("/calls/:id/ticket-draft", ticketHandler.Draft)
	authed.POST("/calls/:id/tickets", ticketHandler.CreateFromCall)

	// --- Customers ---
	authed.GET("/customers", customerHandler.List)
	authed.POST("/customers", customerHandler.Create)
	authed.GET("/customers/:id", customerHandler.Get)
	authed.PATCH("/customers/:id", customerHandler.Update)
	authed.DELETE("/customers/:id", customerHandler.Delete, admin)

	// --- Campaigns ---
	authed.GET("/campaigns", campaignHandler.List)
	authed.POST("/campaigns", campaignHandler.Create)
	authed.GET("/campaigns/:id", campaignHandler.Get)
	authed.PATCH("/campaigns/:id", campaignHandler.Update)
	authed.DELETE("/campaigns/:id", campaignHandler.Delete, supervisor)
	authed.GET("/campaigns/:id/members", campaignHandler.Members)
	authed.POST("/campaigns/:id/members", campaignHandler.AddMember)
	authed.DELETE("/campaigns/:id/members/:customer_id", campaignHandler.RemoveMember)

	// --- Administration ---
	users := authed.Group("/users", admin)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	authed.GET("/security-logs", securityLogHandler.List, admin)

	return e
}

func skipInfra(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		Skipper:      skipInfra,
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/safecall/crm-console/docs"
	"github.com/safecall/crm-console/internal/api"
	"github.com/safecall/crm-console/internal/core/ports"
	"github.com/safecall/crm-console/internal/core/service"
	"github.com/safecall/crm-console/internal/infrastructure/backend"
	"github.com/safecall/crm-console/internal/infrastructure/config"
	"github.com/safecall/crm-console/internal/infrastructure/db/mongo"
	"github.com/safecall/crm-console/internal/infrastructure/db/redis"
	"github.com/safecall/crm-console/internal/infrastructure/http/handlers"
	"github.com/safecall/crm-console/internal/infrastructure/queue"
	"github.com/safecall/crm-console/internal/infrastructure/session"
	"github.com/safecall/crm-console/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// boot logs until the configured logger exists.
	boot := zerolog.New(os.Stderr).With().Timestamp().Str("service", "crm-console").Logger()

	if err := godotenv.Load(); err != nil {
		boot.Info().Msg("no .env file found, using system environment variables")
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	readiness := handlers.NewReadinessHandler()

	// Diagnostics sink: Warn and above are mirrored into Mongo.
	var (
		store *mongo.Store
		diag  *mongo.DiagnosticsWriter
		sinks []zerolog.LevelWriter
	)
	if cfg.Mongo.Enabled {
		var err error
		store, err = mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			boot.Fatal().Err(err).Msg("diagnostics store connect")
		}
		diag = mongo.NewDiagnosticsWriter(store.Diagnostics(), zerolog.WarnLevel)
		sinks = append(sinks, diag)
		readiness.Register("mongodb", store.Ping)
	}

	logr := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Output: os.Stdout,
		Sinks:  sinks,
	})

	// Credential persistence.
	var creds ports.CredentialStore = session.NewMemoryStore()
	if cfg.Session.Store == config.SessionStoreRedis {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			logr.Fatal().Err(err).Msg("redis connect")
		}
		defer rdb.Close()
		creds = redis.NewCredentialStore(rdb, cfg.Session.Key, cfg.Session.TTL)
		readiness.Register("redis", redis.Ping(rdb))
	}

	holder := session.NewHolder(creds, logr)
	if err := holder.Restore(ctx); err != nil {
		logr.Warn().Err(err).Msg("stored session not restored")
	}

	client := backend.NewClient(cfg.Backend.URL, holder, logr)
	readiness.Register("backend", client.Ping)

	customerRepo := backend.NewCustomerRepository(client)
	callRepo := backend.NewCallRepository(client)
	ticketRepo := backend.NewTicketRepository(client)
	campaignRepo := backend.NewCampaignRepository(client)
	userRepo := backend.NewUserRepository(client)

	dispatcher := queue.NewDispatcher(cfg.DispatchWorkers, logr)
	dispatcher.Start(ctx)

	router := api.NewRouter(api.Services{
		Auth:         service.NewAuthService(backend.NewAuthRepository(client), holder, logr),
		Dashboard:    service.NewDashboardService(customerRepo, ticketRepo, callRepo, logr),
		Stats:        service.NewStatsService(backend.NewStatsRepository(client), callRepo, ticketRepo, userRepo, logr),
		Tickets:      service.NewTicketService(ticketRepo, callRepo, logr),
		Calls:        service.NewCallService(callRepo, logr),
		Customers:    service.NewCustomerService(customerRepo, logr),
		Campaigns:    service.NewCampaignService(campaignRepo, dispatcher, logr),
		Users:        service.NewUserService(userRepo, logr),
		SecurityLogs: service.NewSecurityLogService(backend.NewSecurityLogRepository(client), logr),
	}, readiness, logr)

	go func() {
		logr.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("backend", cfg.Backend.URL).
			Str("session_store", cfg.Session.Store).
			Strs("readiness_checks", readiness.Names()).
			Msg("console gateway listening")
		if err := router.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logr.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := router.Shutdown(shutdownCtx); err != nil {
		logr.Error().Err(err).Msg("server forced to shutdown")
	}
	if diag != nil {
		if err := diag.Close(shutdownCtx); err != nil {
			logr.Error().Err(err).Msg("diagnostics flush")
		}
	}
	if store != nil {
		if err := store.Close(shutdownCtx); err != nil {
			logr.Error().Err(err).Msg("diagnostics store close")
		}
	}
	logr.Info().Msg("stopped")
}

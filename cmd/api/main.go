package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/marceelkacz03/lola-crm/config"
	"github.com/marceelkacz03/lola-crm/internal/calendar"
	"github.com/marceelkacz03/lola-crm/internal/handler"
	accountHandler "github.com/marceelkacz03/lola-crm/internal/handler/account"
	activityHandler "github.com/marceelkacz03/lola-crm/internal/handler/activity"
	authHandler "github.com/marceelkacz03/lola-crm/internal/handler/auth"
	calendarHandler "github.com/marceelkacz03/lola-crm/internal/handler/calendar"
	dealHandler "github.com/marceelkacz03/lola-crm/internal/handler/deal"
	eventHandler "github.com/marceelkacz03/lola-crm/internal/handler/event"
	exportHandler "github.com/marceelkacz03/lola-crm/internal/handler/export"
	interactionHandler "github.com/marceelkacz03/lola-crm/internal/handler/interaction"
	reportHandler "github.com/marceelkacz03/lola-crm/internal/handler/report"
	templateHandler "github.com/marceelkacz03/lola-crm/internal/handler/template"
	"github.com/marceelkacz03/lola-crm/internal/middleware"
	"github.com/marceelkacz03/lola-crm/internal/model"
	"github.com/marceelkacz03/lola-crm/internal/repository/postgres"
	"github.com/marceelkacz03/lola-crm/internal/router"
	accountService "github.com/marceelkacz03/lola-crm/internal/service/account"
	activityService "github.com/marceelkacz03/lola-crm/internal/service/activity"
	authService "github.com/marceelkacz03/lola-crm/internal/service/auth"
	dealService "github.com/marceelkacz03/lola-crm/internal/service/deal"
	eventService "github.com/marceelkacz03/lola-crm/internal/service/event"
	exportService "github.com/marceelkacz03/lola-crm/internal/service/export"
	interactionService "github.com/marceelkacz03/lola-crm/internal/service/interaction"
	reportService "github.com/marceelkacz03/lola-crm/internal/service/report"
	syncService "github.com/marceelkacz03/lola-crm/internal/service/sync"
	templateService "github.com/marceelkacz03/lola-crm/internal/service/template"
	"github.com/marceelkacz03/lola-crm/pkg/logger"
	"github.com/marceelkacz03/lola-crm/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)
	appMetrics := metrics.NewMetrics("lola_crm", "api")

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Initialize repositories
	accountRepo := postgres.NewAccountRepository(db)
	dealRepo := postgres.NewDealRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	activityRepo := postgres.NewActivityRepository(db)
	interactionRepo := postgres.NewInteractionRepository(db)
	templateRepo := postgres.NewTemplateRepository(db)
	userRepo := postgres.NewUserRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)
	exportRepo := postgres.NewExportRepository(db)

	// Initialize calendar provider
	provider, err := calendar.NewGoogleProvider(context.Background(), cfg.Calendar)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize calendar provider")
	}
	if !provider.Enabled() {
		log.Info().Msg("calendar sync disabled; events will be stored locally only")
	}

	// Initialize services
	syncSvc := syncService.NewService(dealRepo, eventRepo, outboxRepo, provider, appMetrics, appLogger)
	accountSvc := accountService.NewService(accountRepo)
	dealSvc := dealService.NewService(dealRepo, syncSvc)
	eventSvc := eventService.NewService(eventRepo, syncSvc)
	activitySvc := activityService.NewService(activityRepo)
	interactionSvc := interactionService.NewService(interactionRepo, accountRepo, appLogger)
	templateSvc := templateService.NewService(templateRepo)
	reportSvc := reportService.NewService(
		dealRepo, eventRepo, activityRepo, accountRepo,
		cfg.Alerts.UpcomingLimit,
		time.Duration(cfg.Alerts.StatsCacheTTLSec)*time.Second,
	)
	authSvc := authService.NewService(userRepo, cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	exportSvc := exportService.NewService(exportRepo)

	// Initialize middleware and handlers
	if err := middleware.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}
	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	h := handler.NewHandler()

	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		accountHandler.NewHandler(accountSvc),
		dealHandler.NewHandler(dealSvc),
		eventHandler.NewHandler(eventSvc, authMiddleware.RequireRole(model.RoleManager)),
		activityHandler.NewHandler(activitySvc),
		interactionHandler.NewHandler(interactionSvc),
		templateHandler.NewHandler(templateSvc),
		reportHandler.NewHandler(reportSvc, authMiddleware.RequireRole(model.RoleManager)),
		calendarHandler.NewHandler(provider, authMiddleware.RequireRole(model.RoleManager)),
		exportHandler.NewHandler(exportSvc),
		h,
		router.RouterConfig{
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			RateLimitEnabled: cfg.RateLimit.Enabled,
			CORSConfig:       corsConfig(cfg.Security),
			MetricsPrefix:    "lola_crm",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func corsConfig(sec config.SecurityConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(sec.AllowedOrigins) > 0 {
		cors.AllowOrigins = sec.AllowedOrigins
	}
	if len(sec.AllowedMethods) > 0 {
		cors.AllowMethods = sec.AllowedMethods
	}
	if len(sec.AllowedHeaders) > 0 {
		cors.AllowHeaders = sec.AllowedHeaders
	}
	return cors
}

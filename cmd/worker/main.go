package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/marceelkacz03/lola-crm/config"
	"github.com/marceelkacz03/lola-crm/internal/email"
	"github.com/marceelkacz03/lola-crm/internal/repository/postgres"
	reportService "github.com/marceelkacz03/lola-crm/internal/service/report"
	appworker "github.com/marceelkacz03/lola-crm/internal/worker"
	"github.com/marceelkacz03/lola-crm/pkg/logger"
	"github.com/marceelkacz03/lola-crm/pkg/messaging/redis"
	"github.com/marceelkacz03/lola-crm/pkg/metrics"
	"github.com/marceelkacz03/lola-crm/pkg/worker"
)

// WorkerEnv carries overrides that only apply to the worker process.
type WorkerEnv struct {
	DigestCron      string        `envconfig:"DIGEST_CRON" default:"0 7 * * *"`
	MetricsPort     int           `envconfig:"METRICS_PORT" default:"9091"`
	CleanupInterval time.Duration `envconfig:"CLEANUP_INTERVAL" default:"1h"`
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	var env WorkerEnv
	if err := envconfig.Process("worker", &env); err != nil {
		log.Fatal().Err(err).Msg("failed to process worker environment")
	}

	appLogger := logger.NewLogger(nil)
	appMetrics := metrics.NewMetrics("lola_crm", "worker")

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	dealRepo := postgres.NewDealRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	activityRepo := postgres.NewActivityRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	zl := log.Logger
	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &zl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	reportSvc := reportService.NewService(
		dealRepo, eventRepo, activityRepo, accountRepo,
		cfg.Alerts.UpcomingLimit,
		time.Duration(cfg.Alerts.StatsCacheTTLSec)*time.Second,
	)
	digestSender := email.NewDigestSender(cfg.SMTP)

	outboxProcessor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:     cfg.Outbox.BatchSize,
		PollInterval:  cfg.Outbox.PollInterval,
		RetryAttempts: cfg.Outbox.RetryAttempts,
		RetryDelay:    cfg.Outbox.RetryDelay,
	}, appLogger, appMetrics)

	cleanupWorker := worker.NewOutboxCleanupWorker(outboxRepo, cfg.Outbox.RetentionDays, env.CleanupInterval, appLogger)
	reminderWorker := appworker.NewReminderWorker(reportSvc, digestSender, env.DigestCron, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go outboxProcessor.Start(ctx)
	go cleanupWorker.Start(ctx)
	go func() {
		if err := reminderWorker.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("reminder worker failed to start")
		}
	}()

	// Metrics endpoint for the worker process
	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", env.MetricsPort),
		Handler: promhttp.Handler(),
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	log.Info().Str("digest_cron", env.DigestCron).Msg("worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down worker...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("metrics server forced to shutdown")
	}

	log.Info().Msg("worker exited properly")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"exchange-ledger/config"
	httpHandler "exchange-ledger/internal/adapter/http/handler"
	"exchange-ledger/internal/adapter/http/middleware"
	pgStorage "exchange-ledger/internal/adapter/storage/postgres"
	redisStorage "exchange-ledger/internal/adapter/storage/redis"
	"exchange-ledger/internal/core/ports"
	"exchange-ledger/internal/scheduler"
	"exchange-ledger/internal/service"
	"exchange-ledger/pkg/logger"
	"exchange-ledger/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(os.Getenv("EXL_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Exchange Ledger")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	if err := pgStorage.MaybeAutoMigrate(ctx, cfg.Database, pool, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	ledgerMetrics := metrics.NewLedgerMetrics(registry)
	cronMetrics := metrics.NewCronJobMetrics(registry)

	// Initialize repositories
	orderRepo := pgStorage.NewOrderRepo(pool)
	archiveRepo := pgStorage.NewArchiveRepo(pool)
	rateRepo := pgStorage.NewRateRepo(pool)
	auditRepo := pgStorage.NewAuditRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize services
	auditSvc := service.NewAuditService(auditRepo, logger.Component(log, "audit"))
	rateSvc := service.NewRateService(
		rateRepo,
		transactor,
		auditSvc,
		ledgerMetrics,
		cfg.Rates.ExpiryWindow(),
		logger.Component(log, "rates"),
	)
	if err := rateSvc.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load persisted rates")
	}
	verifier := service.NewSlipVerifier(logger.Component(log, "slip"))
	orderSvc := service.NewOrderService(
		orderRepo,
		archiveRepo,
		transactor,
		rateSvc,
		verifier,
		auditSvc,
		ledgerMetrics,
		service.LedgerConfig{
			ReferenceAttempts: cfg.Ledger.ReferenceAttempts,
			DefaultPageSize:   cfg.Ledger.DefaultPageSize,
			MaxPageSize:       cfg.Ledger.MaxPageSize,
			Retention:         cfg.Archive.Retention,
			ArchiveBatchSize:  cfg.Archive.BatchSize,
		},
		logger.Component(log, "orders"),
	)
	reportingSvc := service.NewReportingService(orderRepo)

	// Archival scheduler
	lock, err := scheduler.NewRedisLock(redisStorage.NewLockStore(rdb), cfg.Archive.LockKey, cfg.Archive.LockTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler lock")
	}
	archiveJob, err := scheduler.NewArchiveJob(orderSvc, logger.Component(log, "archive"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create archive job")
	}
	sched, err := scheduler.NewService(scheduler.ServiceParams{
		Logger:   logger.Component(log, "scheduler"),
		Registry: scheduler.NewRegistry(archiveJob),
		Lock:     lock,
		Metrics:  cronMetrics,
		Interval: cfg.Archive.Interval,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}
	schedDone := make(chan struct{})
	go func() {
		defer close(schedDone)
		if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("scheduler exited")
		}
	}()

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		RateSvc:        rateSvc,
		OrderSvc:       orderSvc,
		ReportingSvc:   reportingSvc,
		AuditSvc:       auditSvc,
		RateLimiter:    redisStorage.NewRateLimitStore(rdb),
		RateLimitRules: middleware.RateLimitRules(cfg.RateLimit),
		AdminAPIKey:    cfg.Admin.APIKey,
		HealthCheckers: []ports.HealthChecker{pgStorage.NewHealthCheck(pool), redisStorage.NewHealthCheck(rdb)},
		Metrics:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Mode:           cfg.Server.Mode,
		Logger:         logger.Component(log, "http"),
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	select {
	case <-schedDone:
	case <-shutdownCtx.Done():
		log.Warn().Msg("scheduler did not stop before shutdown deadline")
	}

	log.Info().Msg("Server exited")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	expenseapp "github.com/propman/backend/internal/application/expense"
	moneyflowapp "github.com/propman/backend/internal/application/moneyflow"
	"github.com/propman/backend/internal/application/pipeline"
	propertyapp "github.com/propman/backend/internal/application/property"
	reportapp "github.com/propman/backend/internal/application/report"
	tenancyapp "github.com/propman/backend/internal/application/tenancy"
	"github.com/propman/backend/internal/application/validation"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/cache"
	"github.com/propman/backend/internal/infrastructure/config"
	"github.com/propman/backend/internal/infrastructure/logger"
	"github.com/propman/backend/internal/infrastructure/persistence"
	"github.com/propman/backend/internal/infrastructure/scheduler"
	"github.com/propman/backend/internal/infrastructure/storage"
	"github.com/propman/backend/internal/infrastructure/telemetry"
	"github.com/propman/backend/internal/interfaces/http/handler"
	"github.com/propman/backend/internal/interfaces/http/middleware"
	"github.com/propman/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

//	@title			Property Management API
//	@version		1.0
//	@description	Residential lettings backend: properties, tenants, leases, expenses and money flows

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting property management backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database, with SQL logged through zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled: cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:  cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	metrics := telemetry.NewMetrics()
	if sqlDB, err := db.DB.DB(); err == nil {
		if err := metrics.RegisterDBStats(sqlDB, cfg.Database.DBName); err != nil {
			log.Warn("Failed to register database pool metrics", zap.Error(err))
		}
	}

	// Idempotency keys and attachment storage
	idempotency := cache.NewIdempotencyStore(ctx, cfg.Redis, log)
	defer func() { _ = idempotency.Close() }()

	objects, err := storage.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize attachment storage", zap.Error(err))
	}

	// Repositories
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	leaseRepo := persistence.NewGormLeaseRepository(db.DB)
	categoryRepo := persistence.NewGormExpenseCategoryRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	attachmentRepo := persistence.NewGormExpenseAttachmentRepository(db.DB)
	moneyFlowRepo := persistence.NewGormMoneyFlowRepository(db.DB)

	// Request pipeline: tracing, validation, logging, then a transaction for commands
	clock := shared.SystemClock
	rules := validation.NewRegistry()
	propertyapp.RegisterValidators(rules, clock)
	tenancyapp.RegisterValidators(rules)
	expenseapp.RegisterValidators(rules, clock, expenseapp.AttachmentSettings{
		MaxFileSizeMB:     cfg.Attachments.MaxFileSizeMB,
		AllowedExtensions: cfg.Attachments.AllowedExtensions,
	})
	moneyflowapp.RegisterValidators(rules, clock)
	reportapp.RegisterValidators(rules)

	requestLogger := func(ctx context.Context) *zap.Logger { return logger.L(ctx).Zap() }
	pipe := pipeline.Standard(rules, persistence.NewGormTransactor(db.DB), requestLogger, metrics, clock).
		Wrap(telemetry.Tracing())

	// Application services
	propertyService := propertyapp.NewPropertyService(pipe, propertyRepo, clock)
	tenantService := tenancyapp.NewTenantService(pipe, tenantRepo, clock)
	leaseService := tenancyapp.NewLeaseService(pipe, leaseRepo, tenantRepo, propertyRepo, clock)
	categoryService := expenseapp.NewCategoryService(pipe, categoryRepo)
	expenseService := expenseapp.NewExpenseService(pipe, expenseapp.ExpenseServiceDeps{
		Expenses:    expenseRepo,
		Categories:  categoryRepo,
		Properties:  propertyRepo,
		Attachments: attachmentRepo,
		Storage:     objects,
		Clock:       clock,
		Logger:      requestLogger,
	})
	moneyFlowService := moneyflowapp.NewMoneyFlowService(pipe, moneyflowapp.MoneyFlowServiceDeps{
		Flows:      moneyFlowRepo,
		Properties: propertyRepo,
		Categories: categoryRepo,
		Tenants:    tenantRepo,
		Leases:     leaseRepo,
		Clock:      clock,
	})
	reportService := reportapp.NewReportService(pipe, propertyRepo, moneyFlowRepo, categoryRepo, clock)

	// Background jobs
	jobs := scheduler.New(scheduler.Config{
		JobTimeout:    cfg.Scheduler.JobTimeout,
		RetryAttempts: scheduler.DefaultConfig().RetryAttempts,
		RetryDelay:    scheduler.DefaultConfig().RetryDelay,
	}, log.Named("scheduler"))
	if cfg.Scheduler.Enabled {
		if err := jobs.Add(scheduler.LeaseExpiryJob(leaseService, cfg.Scheduler.LeaseExpiryInterval, log)); err != nil {
			log.Fatal("Failed to register lease expiry job", zap.Error(err))
		}
		if err := jobs.Start(ctx); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
	}

	// HTTP handlers
	if !cfg.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	base := handler.BaseHandler{ShowErrorDetail: cfg.App.IsDevelopment()}
	checks := map[string]handler.Pinger{"database": db}
	if cfg.Redis.URL != "" {
		checks["cache"] = idempotency
	}

	engine := router.New(router.Options{
		Logger:         log,
		HTTP:           cfg.HTTP,
		ServiceName:    cfg.Telemetry.ServiceName,
		Tracing:        tracerProvider.IsEnabled(),
		Metrics:        metrics,
		Idempotency:    idempotency,
		IdempotencyTTL: cfg.Redis.IdempotencyTTL,
	}, router.Handlers{
		Properties: handler.NewPropertyHandler(base, propertyService, reportService),
		Tenants:    handler.NewTenantHandler(base, tenantService),
		Leases:     handler.NewLeaseHandler(base, leaseService),
		Categories: handler.NewCategoryHandler(base, categoryService),
		Expenses:   handler.NewExpenseHandler(base, expenseService, metrics),
		MoneyFlows: handler.NewMoneyFlowHandler(base, moneyFlowService),
		Health:     handler.NewHealthHandler(checks),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := jobs.Stop(shutdownCtx); err != nil {
		log.Error("Scheduler did not stop in time", zap.Error(err))
	}

	// Give in-flight spans a moment to export before the deferred shutdowns run
	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	if err := tracerProvider.ForceFlush(flushCtx); err != nil {
		log.Warn("Failed to flush spans", zap.Error(err))
	}

	log.Info("Server exited")
}

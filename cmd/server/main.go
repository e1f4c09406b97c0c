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
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	auditapp "github.com/garage/backend/internal/application/audit"
	backupapp "github.com/garage/backend/internal/application/backup"
	catalogapp "github.com/garage/backend/internal/application/catalog"
	financeapp "github.com/garage/backend/internal/application/finance"
	fleetapp "github.com/garage/backend/internal/application/fleet"
	hrapp "github.com/garage/backend/internal/application/hr"
	maintenanceapp "github.com/garage/backend/internal/application/maintenance"
	partnerapp "github.com/garage/backend/internal/application/partner"
	"github.com/garage/backend/internal/infrastructure/cache"
	"github.com/garage/backend/internal/infrastructure/config"
	"github.com/garage/backend/internal/infrastructure/logger"
	"github.com/garage/backend/internal/infrastructure/persistence"
	"github.com/garage/backend/internal/infrastructure/storage"
	"github.com/garage/backend/internal/infrastructure/telemetry"
	"github.com/garage/backend/internal/interfaces/http/handler"
	"github.com/garage/backend/internal/interfaces/http/middleware"
	"github.com/garage/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Garage Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry providers. All become no-ops when telemetry is disabled.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer shutdownTelemetry("tracer", tracerProvider.Shutdown, log)

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer shutdownTelemetry("meter provider", meterProvider.Shutdown, log)

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log exporter", zap.Error(err))
	}
	defer shutdownTelemetry("logger provider", loggerProvider.Shutdown, log)

	if loggerProvider.IsEnabled() {
		otelCore := telemetry.NewZapOTELCore(cfg.Telemetry.ServiceName, loggerProvider)
		log = telemetry.BridgeLogger(log, otelCore)
		log.Info("Log export to collector enabled")
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.DB.Use(otelgorm.NewPlugin()); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}

	// Idempotency store for replayed writes. Redis is preferred so replays
	// deduplicate across instances; a single-node deployment falls back to
	// the in-memory store when Redis is unreachable.
	var idempotencyStore cache.IdempotencyStore
	redisStore, err := cache.NewRedisIdempotencyStore(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory idempotency store", zap.Error(err))
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
	} else {
		idempotencyStore = redisStore
		log.Info("Redis idempotency store connected")
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Repositories
	clientRepo := persistence.NewGormClientRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	carRepo := persistence.NewGormCarRepository(db.DB)
	insuranceRepo := persistence.NewGormInsurancePolicyRepository(db.DB)
	shopServiceRepo := persistence.NewGormShopServiceRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	maintenanceRepo := persistence.NewGormMaintenanceRequestRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	salaryRepo := persistence.NewGormSalaryRepository(db.DB)
	financeCategoryRepo := persistence.NewGormFinanceCategoryRepository(db.DB)
	financeRecordRepo := persistence.NewGormFinanceRecordRepository(db.DB)
	auditRepo := persistence.NewGormEntryRepository(db.DB)
	transactionScope := persistence.NewGormTransactionScope(db.DB)
	backupDatastore := persistence.NewGormDatastore(db.DB)

	// Archive storage is optional; export/import keep working without it
	var archiveStorage backupapp.ArchiveStorage
	if cfg.Backup.Enabled {
		s3Storage, err := storage.NewS3ArchiveStorage(&cfg.Backup, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize archive storage", zap.Error(err))
		}
		archiveStorage = s3Storage
		log.Info("Archive storage configured", zap.String("bucket", cfg.Backup.Bucket))
	}

	// Application services
	auditService := auditapp.NewService(auditRepo, clientRepo)
	financeService := financeapp.NewService(financeCategoryRepo, financeRecordRepo, auditService)
	clientService := partnerapp.NewClientService(clientRepo, carRepo, auditService)
	supplierService := partnerapp.NewSupplierService(supplierRepo, productRepo, auditService)
	carService := fleetapp.NewCarService(carRepo, clientRepo, insuranceRepo, maintenanceRepo, auditService)
	insuranceService := fleetapp.NewInsuranceService(insuranceRepo, auditService)
	shopServiceService := catalogapp.NewShopServiceService(shopServiceRepo, maintenanceRepo, auditService)
	productService := catalogapp.NewProductService(productRepo, supplierRepo, maintenanceRepo, financeService, auditService, log)
	ledgerService := maintenanceapp.NewLedgerService(transactionScope, maintenanceRepo, carRepo, shopServiceRepo, financeService, log)
	employeeService := hrapp.NewEmployeeService(employeeRepo, salaryRepo, auditService)
	salaryService := hrapp.NewSalaryService(salaryRepo, employeeRepo, financeService, auditService, log)
	backupService := backupapp.NewService(backupDatastore, auditRepo, archiveStorage, log)

	// HTTP handlers
	clientHandler := handler.NewClientHandler(clientService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	carHandler := handler.NewCarHandler(carService)
	insuranceHandler := handler.NewInsuranceHandler(insuranceService)
	shopServiceHandler := handler.NewShopServiceHandler(shopServiceService)
	productHandler := handler.NewProductHandler(productService)
	maintenanceHandler := handler.NewMaintenanceHandler(ledgerService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	salaryHandler := handler.NewSalaryHandler(salaryService)
	financeHandler := handler.NewFinanceHandler(financeService)
	auditHandler := handler.NewAuditHandler(auditService)
	backupHandler := handler.NewBackupHandler(backupService)
	systemHandler := handler.NewSystemHandler(db.DB, cfg.App.Name)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(&cfg.HTTP))
	engine.Use(middleware.MaxBodySize(cfg.HTTP.MaxBodySize))
	if tracerProvider.IsEnabled() {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithGroupMiddleware(
			middleware.Auth(&cfg.JWT),
			middleware.Idempotency(idempotencyStore, cfg.Idempotency.TTL, log),
		),
	)
	r.Register(clientHandler).
		Register(supplierHandler).
		Register(carHandler).
		Register(insuranceHandler).
		Register(shopServiceHandler).
		Register(productHandler).
		Register(maintenanceHandler).
		Register(employeeHandler).
		Register(salaryHandler).
		Register(financeHandler).
		Register(auditHandler).
		Register(backupHandler)
	r.Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

func shutdownTelemetry(name string, shutdown func(context.Context) error, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Error("Error shutting down "+name, zap.Error(err))
	}
}

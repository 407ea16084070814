package main

import (
	"context"
	"log"
	"time"

	appservice "github.com/mspsec/riskboard/internal/application/service"
	"github.com/mspsec/riskboard/internal/config"
	"github.com/mspsec/riskboard/internal/domain/service"
	"github.com/mspsec/riskboard/internal/infrastructure/audit"
	"github.com/mspsec/riskboard/internal/infrastructure/monitoring"
	"github.com/mspsec/riskboard/internal/infrastructure/persistence/postgres"
	"github.com/mspsec/riskboard/internal/infrastructure/persistence/redis"
	"github.com/mspsec/riskboard/internal/infrastructure/ratelimit"
	"github.com/mspsec/riskboard/internal/infrastructure/secrets"
	"github.com/mspsec/riskboard/internal/infrastructure/upstream"
	httpiface "github.com/mspsec/riskboard/internal/interfaces/http"
	"github.com/mspsec/riskboard/internal/interfaces/http/handlers"
	"github.com/mspsec/riskboard/internal/workers/collector"
	"github.com/mspsec/riskboard/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	ctx := context.Background()

	if err := config.WatchLogLevel(appLogger.SetLevel); err != nil {
		appLogger.Warn(ctx, "log level hot-reload unavailable", logger.Error(err))
	}

	cleanup, err := monitoring.InitTracer(&cfg.Tracing)
	if err != nil {
		appLogger.Fatal(ctx, "failed to initialize tracer", err)
	}
	defer cleanup()

	metrics := monitoring.NewMetrics()

	db, err := postgres.NewDBConnection(&cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "failed to connect to postgres", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	redisClient, err := redis.NewClient(&cfg.Redis, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "failed to connect to redis", err)
	}
	defer redisClient.Close()

	// Repositories
	tenantRepo := postgres.NewTenantRepository(db, appLogger)
	reportRepo := postgres.NewReportRepository(db, appLogger)
	snapshotRepo := postgres.NewSnapshotRepository(db, appLogger)
	userRepo := postgres.NewUserRepository(db, appLogger)
	inviteRepo := postgres.NewInviteRepository(db, appLogger)
	integrationRepo := postgres.NewIntegrationRepository(db, appLogger)

	// Secrets backend: Vault in production, in-memory for local development.
	var secretStore secrets.Store
	if cfg.Vault.Enabled {
		secretStore, err = secrets.NewVaultStore(&cfg.Vault, appLogger)
		if err != nil {
			appLogger.Fatal(ctx, "failed to connect to vault", err)
		}
	} else {
		appLogger.Warn(ctx, "vault disabled, using in-memory secret store")
		secretStore = secrets.NewMemoryStore()
	}

	// Audit trail: Kafka when configured, structured logs otherwise.
	var auditSvc service.AuditService
	if cfg.Kafka.Enabled {
		auditSvc, err = audit.NewKafkaPublisher(&cfg.Kafka, appLogger)
		if err != nil {
			appLogger.Fatal(ctx, "failed to create kafka audit publisher", err)
		}
	} else {
		auditSvc = audit.NewLogPublisher(appLogger)
	}
	defer auditSvc.Close()

	// Upstream metrics backend and cache
	upstreamClient := upstream.NewClient(&cfg.Upstream, appLogger)
	metricCache := redis.NewMetricCache(redisClient, cfg.Upstream.MetricCacheTTL(), appLogger)
	metricSvc := appservice.NewMetricService(upstreamClient, metricCache, metrics, appLogger)

	// Application services
	tenantSvc := appservice.NewTenantAppService(tenantRepo, metricSvc, auditSvc, appLogger)
	reportSvc := appservice.NewReportAppService(reportRepo, snapshotRepo, tenantRepo, auditSvc, metrics, appLogger)
	dashboardSvc := appservice.NewDashboardAppService(metricSvc, snapshotRepo, appLogger)
	userSvc := appservice.NewUserAppService(userRepo, inviteRepo, auditSvc, appLogger)
	integrationSvc := appservice.NewIntegrationAppService(
		integrationRepo, tenantRepo, secretStore, metricSvc, upstreamClient, auditSvc, appLogger)

	var limiter *ratelimit.TenantRateLimiter
	if cfg.RateLimit.Enabled {
		limiter, err = ratelimit.NewTenantRateLimiter(redisClient, &ratelimit.Config{
			Limit:     int64(cfg.RateLimit.PerTenantRPM),
			Window:    time.Minute,
			FailOpen:  true,
			KeyPrefix: "ratelimit",
		}, appLogger)
		if err != nil {
			appLogger.Fatal(ctx, "failed to create rate limiter", err)
		}
	}

	router := httpiface.NewRouter(
		cfg,
		appLogger,
		metrics,
		limiter,
		handlers.NewHealthHandler(db, redisClient),
		handlers.NewAuthHandler(&cfg.Auth),
		handlers.NewTenantHandler(tenantSvc),
		handlers.NewReportHandler(reportSvc),
		handlers.NewDashboardHandler(dashboardSvc),
		handlers.NewUserHandler(userSvc),
		handlers.NewIntegrationHandler(integrationSvc),
	)

	if cfg.Collector.Enabled {
		snapCollector := collector.New(tenantRepo, snapshotRepo, metricSvc, cfg.Collector.TickInterval(), appLogger)
		snapCollector.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := snapCollector.Stop(stopCtx); err != nil {
				appLogger.Error(stopCtx, "collector did not stop cleanly", err)
			}
		}()
	}

	if err := router.Start(); err != nil {
		appLogger.Fatal(ctx, "http server failed", err)
	}
}

// Package http wires the gin engine, middleware stack and route table.
package http

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mspsec/riskboard/internal/config"
	"github.com/mspsec/riskboard/internal/infrastructure/monitoring"
	"github.com/mspsec/riskboard/internal/infrastructure/ratelimit"
	"github.com/mspsec/riskboard/internal/interfaces/http/handlers"
	"github.com/mspsec/riskboard/internal/interfaces/http/middleware"
	"github.com/mspsec/riskboard/pkg/constants"
	"github.com/mspsec/riskboard/pkg/logger"
)

// Router owns the HTTP server and its route table.
type Router struct {
	engine  *gin.Engine
	config  *config.Config
	logger  logger.Logger
	metrics *monitoring.Metrics
	limiter *ratelimit.TenantRateLimiter

	healthHandler      *handlers.HealthHandler
	authHandler        *handlers.AuthHandler
	tenantHandler      *handlers.TenantHandler
	reportHandler      *handlers.ReportHandler
	dashboardHandler   *handlers.DashboardHandler
	userHandler        *handlers.UserHandler
	integrationHandler *handlers.IntegrationHandler

	server *http.Server
}

// NewRouter creates the router. The rate limiter may be nil when disabled.
func NewRouter(
	cfg *config.Config,
	log logger.Logger,
	metrics *monitoring.Metrics,
	limiter *ratelimit.TenantRateLimiter,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	tenantHandler *handlers.TenantHandler,
	reportHandler *handlers.ReportHandler,
	dashboardHandler *handlers.DashboardHandler,
	userHandler *handlers.UserHandler,
	integrationHandler *handlers.IntegrationHandler,
) *Router {
	return &Router{
		engine:             gin.New(),
		config:             cfg,
		logger:             log.WithComponent("router"),
		metrics:            metrics,
		limiter:            limiter,
		healthHandler:      healthHandler,
		authHandler:        authHandler,
		tenantHandler:      tenantHandler,
		reportHandler:      reportHandler,
		dashboardHandler:   dashboardHandler,
		userHandler:        userHandler,
		integrationHandler: integrationHandler,
	}
}

// SetupRoutes installs the middleware stack and the route table.
func (r *Router) SetupRoutes() {
	r.engine.Use(gin.Recovery())
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logging(r.logger))
	if r.metrics != nil {
		r.engine.Use(middleware.Metrics(r.metrics))
	}
	if r.config.Tracing.Enabled {
		r.engine.Use(middleware.Tracing())
	}

	corsConfig := cors.Config{
		AllowOrigins:     r.config.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"*"}
		corsConfig.AllowCredentials = false
	}
	r.engine.Use(cors.New(corsConfig))

	r.engine.GET("/healthz/live", r.healthHandler.Live)
	r.engine.GET("/healthz/ready", r.healthHandler.Ready)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if r.config.Monitoring.PprofEnabled {
		pprof.Register(r.engine)
	}

	// Reachable without a session.
	r.engine.GET("/api/login", r.authHandler.Login)
	r.engine.POST("/api/v1/invites/accept", r.userHandler.AcceptInvite)

	v1 := r.engine.Group("/api/v1")
	v1.Use(middleware.Auth(r.config.Auth.SessionSecret))
	if r.config.RateLimit.Enabled && r.limiter != nil {
		v1.Use(middleware.RateLimit(r.limiter, r.metrics))
	}

	admin := middleware.RequireRole(constants.RoleAdmin)
	editor := middleware.RequireRole(constants.RoleAdmin, constants.RoleAnalyst)

	tenants := v1.Group("/tenants")
	{
		tenants.GET("", r.tenantHandler.List)
		tenants.POST("", admin, r.tenantHandler.Create)
		tenants.GET("/:id", r.tenantHandler.Get)
		tenants.PUT("/:id", admin, r.tenantHandler.Update)
		tenants.DELETE("/:id", admin, r.tenantHandler.Delete)

		tenants.GET("/:id/reports", r.reportHandler.ListForTenant)
		tenants.POST("/:id/reports", editor, r.reportHandler.Create)
		tenants.GET("/:id/report-periods", r.reportHandler.Periods)

		tenants.GET("/:id/risk-stats", r.dashboardHandler.RiskStats)
		tenants.GET("/:id/dashboard", r.dashboardHandler.Dashboard)

		widgets := tenants.Group("/:id/widgets")
		{
			widgets.GET("/secure-scores", r.dashboardHandler.SecureScores)
			widgets.GET("/m365-admins", r.dashboardHandler.M365Admins)
			widgets.GET("/trusted-locations", r.dashboardHandler.TrustedLocations)
			widgets.GET("/sign-in-policies", r.dashboardHandler.SignInPolicies)
			widgets.GET("/phish-resistant-mfa", r.dashboardHandler.PhishResistantMFA)
			widgets.GET("/no-encryption", r.dashboardHandler.UnencryptedDevices)
			widgets.GET("/compliance-policies", r.dashboardHandler.CompliancePolicies)
		}

		tenants.GET("/:id/integrations", r.integrationHandler.ListForTenant)
		tenants.POST("/:id/integrations", admin, r.integrationHandler.Create)
	}

	reports := v1.Group("/reports")
	{
		reports.GET("/:id", r.reportHandler.Get)
		reports.PUT("/:id", editor, r.reportHandler.Update)
		reports.POST("/:id/submit", editor, r.reportHandler.Submit)
		reports.POST("/:id/approve", admin, r.reportHandler.Approve)
		reports.POST("/:id/send", admin, r.reportHandler.Send)
		reports.POST("/:id/recompute", editor, r.reportHandler.Recompute)
	}

	users := v1.Group("/users")
	{
		users.GET("", r.userHandler.List)
		users.POST("", admin, r.userHandler.Create)
		users.GET("/:id", r.userHandler.Get)
		users.PUT("/:id", admin, r.userHandler.Update)
		users.DELETE("/:id", admin, r.userHandler.Delete)
	}

	invites := v1.Group("/invites")
	{
		invites.GET("", admin, r.userHandler.ListInvites)
		invites.POST("", admin, r.userHandler.CreateInvite)
		invites.DELETE("/:id", admin, r.userHandler.RevokeInvite)
	}

	integrations := v1.Group("/integrations")
	{
		integrations.DELETE("/:id", admin, r.integrationHandler.Delete)
		integrations.POST("/:id/test", admin, r.integrationHandler.Test)
	}

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    constants.ErrCodeNotFound,
				"message": "the requested resource was not found",
			},
		})
	})
}

// Start sets up the routes and serves until shutdown.
func (r *Router) Start() error {
	r.SetupRoutes()

	addr := r.config.Server.Addr()
	r.server = &http.Server{
		Addr:           addr,
		Handler:        r.engine,
		ReadTimeout:    time.Duration(r.config.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(r.config.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	r.logger.Info(context.Background(), "starting HTTP server", logger.String("address", addr))

	go r.gracefulShutdown()

	if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (r *Router) gracefulShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	r.logger.Info(context.Background(), "shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := r.server.Shutdown(ctx); err != nil {
		r.logger.Error(context.Background(), "server forced to shutdown", err)
	}
}

// Stop shuts the server down, waiting for in-flight requests.
func (r *Router) Stop(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	return r.server.Shutdown(ctx)
}

// Engine exposes the underlying gin engine, used by tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/memberhub/member-console/docs"
	"github.com/memberhub/member-console/internal/api/handler"
	"github.com/memberhub/member-console/internal/api/middleware"
	"github.com/memberhub/member-console/internal/core/ports"
	"github.com/memberhub/member-console/internal/core/service"
	"github.com/memberhub/member-console/internal/infrastructure/config"
	mongodb "github.com/memberhub/member-console/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all member API routes
// registered.
func NewRouter(db *mongo.Database, audit ports.AuditRecorder, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// Each router owns its HTTP-metrics registry so two instances can
	// coexist in one process. The domain counters live on the default
	// registry, so /metrics gathers from both.
	registry := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "memberd",
		Registerer: registry,
	}))

	// --- Dependencies ---
	memberRepo := mongodb.NewMemberRepository(db)
	authService := service.NewAuthService(memberRepo, cfg.API.JWTSecret, cfg.API.TokenTTL)
	memberService := service.NewMemberService(memberRepo, audit, log)
	authHandler := handler.NewAuthHandler(authService)
	memberHandler := handler.NewMemberHandler(memberService)

	// --- Public routes ---
	e.POST("/login", authHandler.Login)
	e.POST("/api/members", memberHandler.Create)

	// --- Authenticated member routes ---
	members := e.Group("/api/members", middleware.Auth(cfg.API.JWTSecret))
	members.GET("", memberHandler.List, middleware.RBAC("admin"))
	members.GET("/:id", memberHandler.Get)
	members.PATCH("/:id", memberHandler.Update)
	members.DELETE("/:id", memberHandler.Delete)
	members.PUT("/:id/roles", memberHandler.SetRoles, middleware.RBAC("admin"))

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{registry, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

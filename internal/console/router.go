// Package console assembles the web console: renderer, session-guarded
// routes and the member API client behind them.
package console

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/memberhub/member-console/internal/console/handler"
	consolemw "github.com/memberhub/member-console/internal/console/middleware"
	"github.com/memberhub/member-console/internal/console/render"
	"github.com/memberhub/member-console/internal/console/service"
	"github.com/memberhub/member-console/internal/console/session"
	"github.com/memberhub/member-console/internal/infrastructure/config"
	"github.com/memberhub/member-console/internal/memberapi"
)

// NewRouter builds the Echo instance serving the console.
func NewRouter(store session.TokenStore, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	renderer, err := render.New()
	if err != nil {
		return nil, fmt.Errorf("build renderer: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// Each router owns its metrics registry so two instances can coexist
	// in one process.
	registry := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "console",
		Registerer: registry,
	}))

	api := memberapi.NewClient(cfg.Console.MemberAPIURL, cfg.Console.ClientTimeout, log)
	adminService := service.NewAdminService(api, log)

	authHandler := handler.NewAuthHandler(api, store, cfg.Console.CookieSecure, log)
	profileHandler := handler.NewProfileHandler(api, store, log)
	adminHandler := handler.NewAdminHandler(adminService, store, log)
	userHandler := handler.NewUserHandler()

	// --- Public routes ---
	e.GET("/", authHandler.Tabs)
	e.POST("/login", authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.POST("/logout", authHandler.Logout)

	// --- Guarded routes ---
	profile := e.Group("/profile", consolemw.Guard(store, log, "admin", "user"))
	profile.GET("", profileHandler.Show)
	profile.POST("", profileHandler.Update)
	profile.POST("/delete", profileHandler.Delete)

	admin := e.Group("/admin", consolemw.Guard(store, log, "admin"))
	admin.GET("", adminHandler.Grid)
	admin.POST("/members", adminHandler.Create)
	admin.POST("/members/:id", adminHandler.Update)
	admin.POST("/members/:id/delete", adminHandler.Delete)

	user := e.Group("/user", consolemw.Guard(store, log, "user"))
	user.GET("", userHandler.Landing)

	// --- Operational endpoints ---
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: registry,
	}))

	// Unknown paths land on the login page.
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/")
	})

	return e, nil
}

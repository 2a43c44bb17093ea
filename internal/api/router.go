// @title                       Forum API
// @version                     1.0
// @description                 Discussion forum backend: authentication, accounts and categories.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package api

import (
	"net"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/openforum/forum-api/docs"
	"github.com/openforum/forum-api/internal/api/apierror"
	"github.com/openforum/forum-api/internal/api/handler"
	"github.com/openforum/forum-api/internal/api/middleware"
	"github.com/openforum/forum-api/internal/core/ports"
)

// Deps is everything the HTTP layer needs. Services are interfaces so the
// router can be exercised end to end with stubs.
type Deps struct {
	Log           zerolog.Logger
	Authenticator ports.Authenticator
	Auth          ports.AuthService
	Users         ports.UserService
	Categories    ports.CategoryService
	LoginLimiter  ports.RateLimiter
	Health        map[string]handler.Pinger

	TokenTTL    time.Duration
	CORSOrigins []string

	// TrustedProxies are the peers whose X-Forwarded-For is believed. With
	// none, the client address is the peer address.
	TrustedProxies []*net.IPNet

	// Registry receives the HTTP metrics. Nil means the default Prometheus
	// registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = apierror.NewHTTPErrorHandler(d.Log)
	e.IPExtractor = ipExtractor(d.TrustedProxies)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(prometheusMiddleware(d.Registry))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, d.TokenTTL)
	userHandler := handler.NewUserHandler(d.Users)
	categoryHandler := handler.NewCategoryHandler(d.Categories)
	healthHandler := handler.NewHealthHandler(d.Health)

	requireAuth := middleware.Auth(d.Authenticator, d.Log)
	requireAdmin := middleware.RequireAdmin()
	requireModerator := middleware.RequireModerator()

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login, middleware.RateLimit("login", d.LoginLimiter, d.Log))
	auth.GET("/me", authHandler.Me, requireAuth)

	// --- User routes ---
	users := api.Group("/users")
	users.GET("/profile", userHandler.Profile, requireAuth)
	users.PUT("/profile", userHandler.UpdateProfile, requireAuth)
	users.GET("", userHandler.List, requireAuth, requireAdmin)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id/role", userHandler.ChangeRole, requireAuth, requireAdmin)
	users.PUT("/:id/status", userHandler.ChangeStatus, requireAuth, requireAdmin)

	// --- Category routes ---
	categories := api.Group("/categories")
	categories.GET("", categoryHandler.List)
	categories.GET("/:id", categoryHandler.Get)
	categories.POST("", categoryHandler.Create, requireAuth, requireAdmin)
	categories.PUT("/:id", categoryHandler.Update, requireAuth, requireModerator)
	categories.DELETE("/:id", categoryHandler.Delete, requireAuth, requireAdmin)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", metricsHandler(d.Registry))   // Prometheus scrape endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)    // API docs

	return e
}

// ipExtractor decides what c.RealIP returns, which keys the login limiter.
// Only the listed ranges may forward a client address; loopback and private
// peers get no implicit trust.
func ipExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, r := range trusted {
		opts = append(opts, echo.TrustIPRange(r))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

func prometheusMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	if reg == nil {
		return echoprometheus.NewMiddleware("forum")
	}
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "forum",
		Registerer: reg,
	})
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}

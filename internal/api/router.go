package api

import (
	"net/http"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/communityhub/events-api/internal/api/handler"
	"github.com/communityhub/events-api/internal/api/middleware"
	"github.com/communityhub/events-api/internal/core/authz"
	"github.com/communityhub/events-api/internal/core/ports"
)

// Dependencies is everything the router wires into handlers.
type Dependencies struct {
	Auth          ports.AuthService
	Tokens        ports.TokenVerifier
	Events        ports.EventService
	Registrations ports.RegistrationService
	Users         ports.UserService

	// Health lists the dependencies pinged by /health/ready.
	Health map[string]handler.Pinger

	Log zerolog.Logger
	// Registerer receives the HTTP metrics; nil means the default registry.
	Registerer prometheus.Registerer
	// Sentry enables the request hub used to report internal errors.
	Sentry bool
}

// NewRouter builds the Echo instance with every route registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "community",
		Subsystem:  "http",
		Registerer: deps.Registerer,
	}))
	if deps.Sentry {
		e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	eventHandler := handler.NewEventHandler(deps.Events)
	registrationHandler := handler.NewRegistrationHandler(deps.Registrations)
	userHandler := handler.NewUserHandler(deps.Users)
	healthHandler := handler.NewHealthHandler(deps.Health)

	authenticated := middleware.Auth(deps.Tokens)
	anyRole := middleware.RBAC(authz.AnyRole...)
	owners := middleware.RBAC(authz.EventOwners...)
	adminOnly := middleware.RBAC(authz.AdminOnly...)

	// --- Probes, metrics, docs (no auth) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", metricsHandler(deps.Registerer))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Auth ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authenticated, anyRole)

	// --- Events ---
	events := api.Group("/events")
	events.GET("", eventHandler.ListApproved)
	events.GET("/mine", eventHandler.ListMine, authenticated, owners)
	events.GET("/:id", eventHandler.Get)
	events.POST("", eventHandler.Create, authenticated, owners)
	events.PUT("/:id", eventHandler.Update, authenticated, owners)
	events.DELETE("/:id", eventHandler.Delete, authenticated, owners)
	events.PUT("/:id/approve", eventHandler.Approve, authenticated, adminOnly)
	events.PUT("/:id/reject", eventHandler.Reject, authenticated, adminOnly)

	// --- Registrations ---
	events.POST("/:id/register", registrationHandler.Register, authenticated, anyRole)
	events.DELETE("/:id/register", registrationHandler.Cancel, authenticated, anyRole)
	events.GET("/:id/registrations", registrationHandler.ListForEvent, authenticated, owners)

	// --- Users ---
	users := api.Group("/users", authenticated, anyRole)
	users.GET("/profile", userHandler.Profile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.GET("/registrations", registrationHandler.ListMine)

	// --- Admin ---
	admin := api.Group("/admin", authenticated, adminOnly)
	admin.GET("/events", eventHandler.ListAll)
	admin.GET("/events/:id/activity", eventHandler.Activity)
	admin.GET("/users", userHandler.List)
	admin.DELETE("/users/:id", userHandler.Delete)
	admin.PUT("/users/:id/role", userHandler.SetRole)

	return e
}

func metricsHandler(reg prometheus.Registerer) echo.HandlerFunc {
	if g, ok := reg.(prometheus.Gatherer); ok {
		return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: g})
	}
	return echoprometheus.NewHandler()
}

// requestLogger writes one access log entry per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			entry := log.Info()
			if v.Status >= http.StatusInternalServerError {
				entry = log.Error().Err(v.Error)
			}
			if id := middleware.Identity(c); id != nil {
				entry = entry.Str("user_id", id.UserID).Str("role", string(id.Role))
			}
			entry.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

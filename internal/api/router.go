package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/nutrilens/nutrilens-api/docs"
	"github.com/nutrilens/nutrilens-api/internal/api/handler"
	"github.com/nutrilens/nutrilens-api/internal/api/middleware"
	"github.com/nutrilens/nutrilens-api/internal/core/ports"
)

// Dependencies are the services the router exposes.
type Dependencies struct {
	Auth     ports.AuthService
	FoodLogs ports.FoodLogService
	Analysis ports.AnalysisService
	Insights ports.InsightsService
	Tokens   ports.TokenVerifier

	// ReadinessChecks are run by /health/ready, keyed by dependency name.
	ReadinessChecks map[string]handler.CheckFunc

	BodyLimit string
	Log       zerolog.Logger

	// Registry receives the HTTP request metrics and backs /metrics. Nil
	// means the Prometheus default registry, where the domain metrics live.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	bodyLimit := deps.BodyLimit
	if bodyLimit == "" {
		bodyLimit = "10M"
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "nutrilens",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	foodLogHandler := handler.NewFoodLogHandler(deps.FoodLogs)
	analysisHandler := handler.NewAnalysisHandler(deps.Analysis)
	insightsHandler := handler.NewInsightsHandler(deps.Insights)
	authMiddleware := middleware.Auth(deps.Tokens)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// --- Authenticated routes ---
	protected := e.Group("", authMiddleware)
	protected.POST("/logout", authHandler.Logout)
	protected.GET("/user_profile", authHandler.Profile)
	protected.POST("/update_profile", authHandler.UpdateProfile)
	protected.POST("/analyze_food", analysisHandler.AnalyzeFood)
	protected.POST("/log_food", foodLogHandler.LogFood)
	protected.GET("/get_food_logs", foodLogHandler.GetFoodLogs)
	protected.GET("/get_nutrition_insights", insightsHandler.GetNutritionInsights)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.ReadinessChecks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

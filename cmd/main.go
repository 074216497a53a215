package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/galactly/onboarding-service/internal/handler"
	"github.com/galactly/onboarding-service/internal/llm"
	"github.com/galactly/onboarding-service/internal/middleware"
	"github.com/galactly/onboarding-service/internal/onboarding"
	"github.com/galactly/onboarding-service/internal/store"
	"github.com/galactly/onboarding-service/pkg/config"
	"github.com/galactly/onboarding-service/pkg/logger"
	"github.com/galactly/onboarding-service/pkg/metrics"
	"github.com/galactly/onboarding-service/prometheus"
)

const serviceVersion = "1.0.0"

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting onboarding service...", zap.String("environment", cfg.Server.Env))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Initialize HTTP metrics
	httpMetrics := metrics.NewHTTPMetrics(cfg.ServiceName)

	// Connect to MongoDB
	ctx := context.Background()
	client, err := store.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(ctx)
	log.Info("MongoDB connection established", zap.String("database", cfg.Mongo.Database))

	st := store.New(client.Database(cfg.Mongo.Database), cfg.Mongo)

	// The generative tier is optional. When disabled or unreachable, canned
	// research responses are served instead.
	var generator onboarding.Generator
	if cfg.LLM.PaidTierEnabled {
		geminiClient, err := llm.NewGeminiClient(ctx, cfg.LLM)
		if err != nil {
			log.Warn("Failed to initialize Gemini client, falling back to research responses", zap.Error(err))
		} else {
			defer geminiClient.Close()
			generator = geminiClient
			log.Info("Gemini client initialized", zap.String("model", cfg.LLM.Model))
		}
	}

	service := onboarding.NewService(st, generator, cfg.LLM.GuardrailsEnabled, log)

	healthHandler := handler.NewHealthHandler(cfg.ServiceName, serviceVersion)
	onboardingHandler := handler.NewOnboardingHandler(service)
	supplierHandler := handler.NewSupplierHandler(st)
	interactionHandler := handler.NewInteractionHandler(st)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(httpMetrics.Middleware())

	// Request logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			log := logger.FromEcho(c)
			log.Info("HTTP Request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Float64("duration_s", duration),
				zap.String("ip", c.RealIP()),
			)

			return err
		}
	})

	// Routes
	e.GET("/", healthHandler.Check)
	e.GET("/health", healthHandler.Check)

	// Prometheus metrics endpoint
	e.GET("/metrics", echo.WrapHandler(metrics.GetPrometheusHandler()))

	api := e.Group("/api")

	ob := api.Group("/onboarding")
	ob.GET("/questions", onboardingHandler.ListQuestions)
	ob.POST("/submit-answer", onboardingHandler.SubmitAnswer)
	ob.GET("/progress/:supplierId", onboardingHandler.GetProgress)
	ob.GET("/all-answers/:supplierId", onboardingHandler.GetAllAnswers)

	suppliers := api.Group("/suppliers")
	suppliers.PUT("/:supplierId", supplierHandler.UpdateSupplier)
	suppliers.POST("/:supplierId/interactions", interactionHandler.LogInteraction)
	suppliers.POST("/:supplierId/recommendations/:buyerId", interactionHandler.CacheRecommendation)
	suppliers.GET("/:supplierId/recommendations/:buyerId", interactionHandler.GetRecommendation)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}

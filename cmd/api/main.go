package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/salescoach/backend/internal/api/handlers"
	rediscache "github.com/salescoach/backend/internal/cache/redis"
	"github.com/salescoach/backend/internal/conversation"
	"github.com/salescoach/backend/internal/evaluation"
	"github.com/salescoach/backend/internal/llm"
	"github.com/salescoach/backend/internal/methodology"
	"github.com/salescoach/backend/internal/metrics"
	"github.com/salescoach/backend/internal/middleware/ratelimit"
	"github.com/salescoach/backend/internal/middleware/security"
	"github.com/salescoach/backend/internal/middleware/validation"
	"github.com/salescoach/backend/internal/persona"
	"github.com/salescoach/backend/internal/scenario"
	"github.com/salescoach/backend/internal/storage/sqlite"
	"github.com/salescoach/backend/pkg/config"
	appLogger "github.com/salescoach/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting sales practice API server")

	metrics.Register()

	registry, err := methodology.Default()
	if err != nil {
		appLogger.Fatal("Invalid methodology configuration", zap.Error(err))
	}

	sqliteClient, err := sqlite.NewClient(cfg.SQLite.Path)
	if err != nil {
		appLogger.Fatal("Failed to create SQLite client", zap.Error(err))
	}
	defer sqliteClient.Close()

	if err := sqliteClient.InitSchema(); err != nil {
		appLogger.Fatal("Failed to initialize schema", zap.Error(err))
	}

	var resultCache evaluation.ResultCache
	if cfg.Redis.Enabled {
		redisClient, err := rediscache.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSec)*time.Second,
		)
		if err != nil {
			appLogger.Fatal("Failed to create Redis client", zap.Error(err))
		}
		defer redisClient.Close()
		resultCache = redisClient
	}

	llmClient := llm.NewClient(
		cfg.LLM.APIKey,
		cfg.LLM.Model,
		cfg.LLM.Temperature,
		cfg.LLM.MaxTokens,
		cfg.LLM.TimeoutSec,
	)

	scorer := evaluation.NewScorer(
		llmClient,
		cfg.Evaluation.MaxConcurrentDimensions,
		cfg.Evaluation.FormatRetries,
		time.Duration(cfg.Evaluation.OracleTimeoutSec)*time.Second,
	)
	evalService := evaluation.NewService(registry, scorer, resultCache, sqliteClient)

	catalogue := scenario.DefaultCatalogue()
	personaGen := persona.NewGenerator(llmClient)
	manager := conversation.NewManager(catalogue, personaGen, evalService, sqliteClient)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(security.HeadersMiddleware(security.HeadersConfig{}))

	limiter := ratelimit.New(ratelimit.Config{
		MaxRequestsPerMinute: 60,
		Logger:               appLogger.GetLogger(),
	})
	defer limiter.Stop()

	conversationHandler := handlers.NewConversationHandler(manager, sqliteClient)
	evaluationHandler := handlers.NewEvaluationHandler(evalService, registry, sqliteClient)
	scenarioHandler := handlers.NewScenarioHandler(catalogue)
	wsHandler := handlers.NewWebSocketHandler(manager)

	api := app.Group("/api/v1")
	api.Use(limiter.Middleware())
	api.Use(validation.Middleware(validation.Config{Logger: appLogger.GetLogger()}))

	api.Post("/conversations", conversationHandler.Start)
	api.Get("/conversations", conversationHandler.List)
	api.Get("/conversations/:id", conversationHandler.Get)
	api.Post("/conversations/:id/messages", conversationHandler.PostMessage)
	api.Post("/conversations/:id/end", conversationHandler.End)

	api.Post("/evaluate", evaluationHandler.Evaluate)
	api.Get("/evaluations", evaluationHandler.History)
	api.Get("/methodologies", evaluationHandler.ListMethodologies)

	api.Get("/scenarios", scenarioHandler.List)
	api.Get("/scenarios/:id", scenarioHandler.Get)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	app.Get("/metrics", metrics.Handler())

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/conversations/:id", websocket.New(wsHandler.HandleConversation))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}

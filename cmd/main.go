package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	fiberRecover "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"cinemood/internal/config"
	"cinemood/internal/database"
	"cinemood/internal/handler"
	"cinemood/internal/llm"
	"cinemood/internal/middleware"
	"cinemood/internal/models"
	"cinemood/internal/repository"
	"cinemood/internal/service"
	"cinemood/internal/tmdb"
)

func main() {
	level := new(slog.LevelVar)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	level.Set(cfg.LogLevel)

	for _, name := range cfg.Missing() {
		slog.Error("required credential is not set, dependent features will fail", "variable", name)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Redis is optional: without it there is no cache and no rate limiting.
	var rdb *redis.Client
	if client, err := database.NewRedis(ctx, cfg.Redis); err != nil {
		slog.Warn("Redis unavailable, running without cache and rate limiting", "error", err)
	} else {
		rdb = client
		defer rdb.Close()
	}

	tmdbClient := tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL)
	llmClient := llm.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, cfg.OpenAI.VisionModel)
	assistant := llm.NewAssistant(llmClient)

	chatRepo := repository.NewChatRepository(db)
	moodRepo := repository.NewMoodRepository(db)
	libraryRepo := repository.NewLibraryRepository(db)

	handlers := handler.Handlers{
		Recommend: handler.NewRecommendHandler(service.NewRecommendService(tmdbClient, assistant, moodRepo)),
		Title:     handler.NewTitleHandler(service.NewTitleService(tmdbClient, assistant, rdb)),
		Profile: handler.NewProfileHandler(
			service.NewProfileService(moodRepo, libraryRepo, assistant),
			service.NewLibraryService(libraryRepo),
		),
		Chat: handler.NewChatHandler(service.NewChatService(chatRepo, llmClient)),
		Health: handler.NewHealthHandler(handler.HealthStatus{
			Env:          cfg.Env,
			HasOpenAIKey: llmClient.Configured(),
			HasTMDBKey:   tmdbClient.Configured(),
			HasDatabase:  cfg.DB.Configured(),
			HasRedis:     rdb != nil,
		}),
	}

	app := fiber.New(fiber.Config{
		AppName:      "CineMood",
		ServerHeader: "CineMood",
		BodyLimit:    10 * 1024 * 1024,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code, "path", c.Path())
			return c.Status(code).JSON(models.EnvelopeError{Error: err.Error()})
		},
	})

	app.Use(fiberRecover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(middleware.Metrics())
	app.Use(middleware.NewRateLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.WindowSeconds).Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	handler.RegisterRoutes(app, handlers)

	go func() {
		addr := ":" + cfg.Port
		slog.Info("starting CineMood", "addr", addr, "env", cfg.Env)
		if err := app.Listen(addr); err != nil {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down CineMood...")
	if err := app.Shutdown(); err != nil {
		slog.Error("error shutting down HTTP server", "error", err)
	}
	slog.Info("shutdown complete")
}

package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/weatherlab/weather-insights/internal/api/http"
	"github.com/weatherlab/weather-insights/internal/config"
	"github.com/weatherlab/weather-insights/internal/ingest"
	"github.com/weatherlab/weather-insights/internal/insight"
	"github.com/weatherlab/weather-insights/internal/scheduler"
	"github.com/weatherlab/weather-insights/internal/store"
	"github.com/weatherlab/weather-insights/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// In-memory stores: reading log with configured retention, append-only insight log.
	readingStore := store.NewReadingStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)
	insightStore := store.NewInsightStore()

	// Readings service owning ingestion and window queries.
	readingsSvc := weather.NewService(readingStore)

	// Gemini-backed generator behind the pipeline's Generator interface.
	generator, err := insight.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("failed to create generator: %v", err)
	}

	// Insight pipeline: window -> prompt -> generation -> extraction -> validation -> store.
	insightsSvc := insight.NewService(readingsSvc, generator, insightStore, cfg.InsightWindowSize, cfg.GenerationTimeout)

	// Scheduler that periodically runs the pipeline.
	sched := scheduler.New(insightsSvc, cfg.InsightInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Optional RabbitMQ reading ingestion.
	if cfg.RabbitURL != "" {
		consumer := ingest.NewConsumer(cfg.RabbitURL, cfg.RabbitQueue, readingsSvc)
		if err := consumer.Start(ctx); err != nil {
			log.Fatalf("failed to start amqp consumer: %v", err)
		}
		defer consumer.Close()
	}

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-insights",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-insights",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, readingsSvc, insightsSvc)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

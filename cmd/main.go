package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mediagrid/internal/ads"
	"mediagrid/internal/api"
	"mediagrid/internal/browse"
	"mediagrid/internal/cache"
	"mediagrid/internal/config"
	"mediagrid/internal/logger"
	"mediagrid/internal/middleware"
	"mediagrid/internal/store"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: "stdout",
		Pretty: cfg.Env == "development",
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Msg("Starting application...")

	// Payload cache: Redis when configured, in-process otherwise
	var payloads cache.PayloadCache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory payload cache")
			payloads = cache.NewMemoryCache()
		} else {
			payloads = redisCache
		}
	} else {
		payloads = cache.NewMemoryCache()
	}
	defer func() {
		if err := payloads.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing payload cache")
		}
	}()

	// Wire the browse session
	contentStore := store.NewContentStore(store.NewFetcher(cfg.FetchTimeout), payloads, cfg.CacheTTL)
	session := browse.NewSession(contentStore, ads.NewAssigner(), browse.Config{
		Source:         cfg.SourceURL,
		PageSize:       cfg.PageSize,
		AdFrequency:    cfg.AdFrequency,
		SearchDebounce: cfg.SearchDebounce,
	})

	// Initial load runs in the background so the server comes up while the
	// payload is in flight; a failed load leaves the session in Failed until
	// an explicit refresh.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
		defer cancel()
		if err := session.Start(ctx); err != nil {
			log.Error().Err(err).Str("source", cfg.SourceURL).Msg("Initial load failed")
		}
	}()

	// Create Fiber app with custom config
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.ErrorHandler,
	})

	api.SetupRoutes(app, session, cfg)

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

package api

import (
	"mediagrid/internal/browse"
	"mediagrid/internal/config"
	"mediagrid/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, session *browse.Session, cfg *config.Config) {
	handlers := NewHandlers(cfg, session)

	// Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	// Server-rendered grid page
	app.Get("/", handlers.GetPage)

	// API group with versioning
	api := app.Group("/api/v1")

	api.Get("/health", handlers.HealthCheck)

	api.Get("/items",
		middleware.ValidateQueryParams(func() interface{} { return new(browseQuery) }),
		handlers.GetItems)
	api.Get("/categories", handlers.GetCategories)
	api.Get("/branding", handlers.GetBranding)
	api.Get("/ads/:slot", handlers.GetAdSlot)

	// Session events
	events := api.Group("/session")
	{
		events.Post("/search", handlers.PostSearch)
		events.Post("/category", handlers.PostCategory)
		events.Post("/sort", handlers.PostSort)
		events.Post("/more", handlers.PostLoadMore)
	}

	api.Post("/images/:id/visible", handlers.PostImageVisible)

	// Control surface for embedding pages (protected)
	admin := api.Group("/admin", middleware.AdminOnly(cfg.AdminAPIKey))
	{
		admin.Post("/refresh", handlers.Refresh)
		admin.Put("/ads/:slot", handlers.PutAdOverride)
		admin.Put("/ads", handlers.PutAdOverrides)
		admin.Delete("/ads/overrides", handlers.DeleteAdOverrides)
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}

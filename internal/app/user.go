package app

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"microshop/internal/config"
	"microshop/internal/handlers"
	"microshop/internal/repositories"
	"microshop/internal/services"
)

// NewUserApp assembles the user registry: repositories, services,
// handlers, and the Fiber app with its middleware and routes.
func NewUserApp(repo repositories.UserRepository) *fiber.App {
	userService := services.NewUserService(repo)
	userHandler := handlers.NewUserHandler(userService)
	healthHandler := handlers.NewHealthHandler(config.ServiceUser, nil)

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(logger.New())
	// Converts any handler panic into a generic 500 instead of killing
	// the process.
	app.Use(recover.New())

	healthHandler.RegisterRoutes(app)
	app.Get("/metrics", userHandler.HandleMetrics)

	apiV1 := app.Group("/api/v1")
	userHandler.RegisterRoutes(apiV1)

	return app
}

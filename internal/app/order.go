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

// NewOrderApp assembles the order registry. verifier gates order creation
// on user existence; prober feeds the readiness fan-check against the
// user registry. In production both are the same clients.UserClient.
func NewOrderApp(repo repositories.OrderRepository, verifier services.UserVerifier, prober handlers.DependencyProber) *fiber.App {
	orderService := services.NewOrderService(repo, verifier)
	orderHandler := handlers.NewOrderHandler(orderService)
	healthHandler := handlers.NewHealthHandler(config.ServiceOrder, map[string]handlers.DependencyProber{
		config.ServiceUser: prober,
	})

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(recover.New())

	healthHandler.RegisterRoutes(app)
	app.Get("/metrics", orderHandler.HandleMetrics)

	apiV1 := app.Group("/api/v1")
	orderHandler.RegisterRoutes(apiV1)

	return app
}

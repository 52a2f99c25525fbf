package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DependencyProber checks one upstream dependency as part of readiness.
type DependencyProber interface {
	CheckHealth(ctx context.Context) error
}

// HealthHandler serves the operational endpoints shared by both services.
// Readiness degrades, but never fails, when a probed dependency is
// unreachable: the process keeps answering liveness checks and can still
// serve local reads.
type HealthHandler struct {
	service      string
	dependencies map[string]DependencyProber
}

// NewHealthHandler creates a HealthHandler for the named service.
// dependencies may be nil for services with nothing to probe.
func NewHealthHandler(service string, dependencies map[string]DependencyProber) *HealthHandler {
	return &HealthHandler{service: service, dependencies: dependencies}
}

// RegisterRoutes registers the operational routes with the Fiber app.
func (h *HealthHandler) RegisterRoutes(app fiber.Router) {
	app.Get("/", h.HandleRoot)
	app.Get("/health", h.HandleHealth)
	app.Get("/health/ready", h.HandleReady)
	app.Get("/health/live", h.HandleLive)
}

// HandleRoot returns service metadata with a docs pointer.
func (h *HealthHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": h.service,
		"version": Version,
		"docs":    "/docs",
	})
}

// HandleHealth always reports healthy while the process is up.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"service":   h.service,
		"timestamp": timestamp(),
	})
}

// HandleReady probes each dependency and reports ready or degraded.
func (h *HealthHandler) HandleReady(c *fiber.Ctx) error {
	status := "ready"
	body := fiber.Map{
		"service":   h.service,
		"timestamp": timestamp(),
	}

	if len(h.dependencies) > 0 {
		results := make(map[string]string, len(h.dependencies))
		for name, prober := range h.dependencies {
			if err := prober.CheckHealth(c.Context()); err != nil {
				log.Printf("Dependency %s unhealthy: %v", name, err)
				results[name] = "unhealthy"
				status = "degraded"
			} else {
				results[name] = "healthy"
			}
		}
		body["dependencies"] = results
	}

	body["status"] = status
	return c.JSON(body)
}

// HandleLive reports process liveness.
func (h *HealthHandler) HandleLive(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "alive",
		"service":   h.service,
		"timestamp": timestamp(),
	})
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

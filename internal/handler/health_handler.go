package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

const readinessTimeout = 2 * time.Second

// Pinger reports whether a backing dependency is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) PingContext(ctx context.Context) error {
	return f(ctx)
}

type HealthHandler struct {
	database Pinger
	cache    Pinger
}

func NewHealthHandler(database, cache Pinger) *HealthHandler {
	return &HealthHandler{
		database: database,
		cache:    cache,
	}
}

// Health returns basic health status
// GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "ok",
		"service": "blog-service",
	})
}

// Ready checks the database and the cache
// GET /ready
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), readinessTimeout)
	defer cancel()

	status := fiber.StatusOK
	checks := fiber.Map{"database": "ok", "cache": "ok"}

	if err := h.database.PingContext(ctx); err != nil {
		slog.WarnContext(ctx, "database not ready", "error", err)
		checks["database"] = "unavailable"
		status = fiber.StatusServiceUnavailable
	}
	if err := h.cache.PingContext(ctx); err != nil {
		slog.WarnContext(ctx, "cache not ready", "error", err)
		checks["cache"] = "unavailable"
		status = fiber.StatusServiceUnavailable
	}

	state := "ready"
	if status != fiber.StatusOK {
		state = "not ready"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": state,
		"checks": checks,
	})
}

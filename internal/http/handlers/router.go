package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Register mounts the consumer-facing surface. Refresh is rate-limited: it is
// the only endpoint that can reach the network.
func Register(app *fiber.App, d *Deps) {
	api := app.Group("/api/v1")

	api.Get("/items", d.ItemHandler.List)
	api.Get("/items/:id", d.ItemHandler.Get)
	api.Post("/items", d.ItemHandler.Create)
	api.Put("/items/:id", d.ItemHandler.Update)
	api.Delete("/items/:id", d.ItemHandler.Delete)

	api.Get("/dashboard", d.ReportHandler.Dashboard)
	api.Get("/reports", d.ReportHandler.Report)
	api.Get("/categories", d.ReportHandler.Categories)
	api.Get("/activity", d.ActivityHandler.Recent)

	refreshLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|refresh"
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Post("/refresh", refreshLimiter, d.SyncHandler.Refresh)
}

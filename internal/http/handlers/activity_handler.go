package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stocksync/internal/store"
	"stocksync/internal/validate"
)

type ActivityHandler struct {
	Store *store.Store
}

// GET /api/v1/activity?limit=n
func (h *ActivityHandler) Recent(c *fiber.Ctx) error {
	limit := validate.Limit(c.Query("limit"), 10, 100)
	entries, err := h.Store.RecentActivity(c.Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"activity": entries})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stocksync/internal/netmon"
	syncer "stocksync/internal/sync"
)

type SyncHandler struct {
	Sync    *syncer.Coordinator
	Monitor *netmon.Monitor
}

// POST /api/v1/refresh?force=1
//
// A failed refresh still answers ok; consumers keep reading the local store.
// The online flag is advisory messaging only.
func (h *SyncHandler) Refresh(c *fiber.Ctx) error {
	force := c.QueryBool("force")
	if err := h.Sync.EnsureFresh(c.Context(), force); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "ok", "online": h.Monitor.Online()})
}

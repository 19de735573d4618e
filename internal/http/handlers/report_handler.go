package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stocksync/internal/reports"
)

type ReportHandler struct {
	Reports *reports.Service
}

// GET /api/v1/dashboard
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	view, err := h.Reports.Dashboard(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// GET /api/v1/reports
func (h *ReportHandler) Report(c *fiber.Ctx) error {
	view, err := h.Reports.Report(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// GET /api/v1/categories
func (h *ReportHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Reports.CategoryQuantities(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"categories": cats})
}

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"stocksync/internal/domain"
	"stocksync/internal/reports"
	"stocksync/internal/store"
	"stocksync/internal/validate"
)

type ItemHandler struct {
	Store *store.Store
}

type itemRequest struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	Category        string          `json:"category"`
	ImageURL        string          `json:"imageUrl"`
	SupplierName    string          `json:"supplierName"`
	SupplierContact string          `json:"supplierContact"`
}

func (r itemRequest) toItem() domain.Item {
	return domain.Item{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		Quantity:        r.Quantity,
		Category:        r.Category,
		ImageURL:        r.ImageURL,
		SupplierName:    r.SupplierName,
		SupplierContact: r.SupplierContact,
	}
}

// GET /api/v1/items
func (h *ItemHandler) List(c *fiber.Ctx) error {
	items, err := h.Store.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": items, "total": len(items)})
}

// GET /api/v1/items/:id
func (h *ItemHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ItemID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	item, err := h.Store.Get(c.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "item not found"})
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"item":         item,
		"availability": reports.Availability(item.Quantity),
	})
}

// POST /api/v1/items
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	return h.upsert(c, 0, fiber.StatusCreated)
}

// PUT /api/v1/items/:id, same replace semantics; the path id wins.
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ItemID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	return h.upsert(c, id, fiber.StatusOK)
}

func (h *ItemHandler) upsert(c *fiber.Ctx, id int64, okStatus int) error {
	var req itemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	if id != 0 {
		req.ID = id
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid name"})
	}
	req.Name = name

	item, err := h.Store.Upsert(c.Context(), req.toItem())
	if domain.IsValidation(err) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return err
	}
	return c.Status(okStatus).JSON(item)
}

// DELETE /api/v1/items/:id
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ItemID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	err := h.Store.Delete(c.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "item not found"})
	}
	if err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

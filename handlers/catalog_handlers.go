package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tourbook/models"
)

// CatalogHandlers serves list/detail endpoints publicly and CRUD to admins
// for one kind of content (locations, properties, hotels, tours).
type CatalogHandlers[T any] struct {
	entity   string
	store    CatalogStore[T]
	required []string
	log      *zap.Logger
}

// NewCatalogHandlers builds handlers for entity. required lists the fields a
// create request must carry.
func NewCatalogHandlers[T any](entity string, store CatalogStore[T], log *zap.Logger, required ...string) *CatalogHandlers[T] {
	return &CatalogHandlers[T]{entity: entity, store: store, required: required, log: log}
}

// HandleList returns one page, optionally filtered by ?location_id= and ?q=.
func (h *CatalogHandlers[T]) HandleList(c *fiber.Ctx) error {
	params := listParams(c)
	items, total, err := h.store.List(c.UserContext(), params)
	if err != nil {
		return storeError(c, h.log, err, h.entity, "list")
	}
	if items == nil {
		items = []T{}
	}

	return c.JSON(fiber.Map{"status": "success", "data": models.PaginatedResponse[T]{
		Data:       items,
		Pagination: params.Pagination(total),
	}})
}

func (h *CatalogHandlers[T]) HandleGet(c *fiber.Ctx) error {
	item, err := h.store.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return storeError(c, h.log, err, h.entity, "fetch")
	}
	return c.JSON(fiber.Map{"status": "success", "data": item})
}

func (h *CatalogHandlers[T]) HandleCreate(c *fiber.Ctx) error {
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid JSON")
	}
	for _, key := range h.required {
		if v, ok := fields[key]; !ok || v == nil || v == "" {
			return errorJSON(c, fiber.StatusBadRequest, fmt.Sprintf("%s is required", key))
		}
	}

	item, err := h.store.Create(c.UserContext(), fields)
	if err != nil {
		return storeError(c, h.log, err, h.entity, "create")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": item})
}

// HandleUpdate applies a partial update; unknown fields are ignored.
func (h *CatalogHandlers[T]) HandleUpdate(c *fiber.Ctx) error {
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	item, err := h.store.Update(c.UserContext(), c.Params("id"), fields)
	if err != nil {
		return storeError(c, h.log, err, h.entity, "update")
	}
	return c.JSON(fiber.Map{"status": "success", "data": item})
}

func (h *CatalogHandlers[T]) HandleDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.store.Delete(c.UserContext(), id); err != nil {
		return storeError(c, h.log, err, h.entity, "delete")
	}
	return c.JSON(fiber.Map{"status": "success", "message": fmt.Sprintf("%s %s deleted successfully", h.entity, id)})
}

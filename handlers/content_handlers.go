package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tourbook/models"
)

// HandleDescribe drafts a marketing description for a catalog entry.
// POST /api/v1/admin/content/describe
func (h *Handler) HandleDescribe(c *fiber.Ctx) error {
	if h.Drafter == nil {
		return errorJSON(c, fiber.StatusServiceUnavailable, "Content drafting is not configured")
	}

	var req models.DescribeRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	text, err := h.Drafter.Draft(c.UserContext(), req)
	if err != nil {
		h.Log.Error("Error generating description", zap.String("kind", req.Kind), zap.String("name", req.Name), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to generate description")
	}

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"description": text}})
}

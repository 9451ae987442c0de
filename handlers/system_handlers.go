package handlers

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HandleHealth pings the database.
// GET /healthz
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	if err := h.DB.Ping(c.UserContext()); err != nil {
		h.Log.Warn("Health check failed", zap.Error(err))
		return errorJSON(c, fiber.StatusServiceUnavailable, "Database ping failed")
	}
	return c.JSON(fiber.Map{"status": "success", "message": "ok"})
}

// HandleVersion prints the embedded build information.
// GET /version
func (h *Handler) HandleVersion(c *fiber.Ctx) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("no build information available")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTML)
	return c.SendString("<pre>\n" + info.String() + "</pre>\n")
}

package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tourbook/auth"
)

// AuthLocalsKey is where the request's *auth.Context is stored.
const AuthLocalsKey = "auth"

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header, returning "" when it is missing or malformed.
func BearerToken(c *fiber.Ctx) string {
	parts := strings.Fields(c.Get(fiber.HeaderAuthorization))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// AuthContext returns the auth context stored by AdminRequired, or a fresh
// unauthenticated one.
func AuthContext(c *fiber.Ctx) *auth.Context {
	if ac, ok := c.Locals(AuthLocalsKey).(*auth.Context); ok {
		return ac
	}
	return auth.NewContext()
}

// AdminRequired verifies the session and requires the profile role 'admin'.
func AdminRequired(v *auth.Verifier, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac := auth.NewContext()
		err := v.Verify(c.UserContext(), ac, BearerToken(c))
		c.Locals(AuthLocalsKey, ac)

		var fetchErr *auth.ProfileFetchError
		switch {
		case err == nil:
			return c.Next()
		case errors.Is(err, auth.ErrNoSession):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Missing or invalid session"})
		case errors.As(err, &fetchErr):
			log.Error("Failed to load profile for admin check", zap.String("userID", fetchErr.UserID), zap.Error(fetchErr.Err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not verify your profile"})
		case errors.Is(err, auth.ErrInsufficientRole):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  "error",
				"message": "Admin access required",
				"remedy":  "refresh_session",
			})
		default:
			log.Error("Unexpected auth failure", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Authorization failed"})
		}
	}
}

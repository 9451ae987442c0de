package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tourbook/auth"
	"tourbook/middleware"
	"tourbook/models"
	"tourbook/repository"
)

// HandleLogin authenticates a profile and returns a JWT token.
// POST /api/v1/auth/login
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	profile, err := h.Profiles.FindByEmail(c.UserContext(), req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		h.Log.Error("Database error during login", zap.String("email", req.Email), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Database error")
	}

	if profile.PasswordHash == "" {
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := h.Tokens.Issue(profile.ID)
	if err != nil {
		h.Log.Error("Error creating JWT", zap.String("userID", profile.ID), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Could not sign token")
	}

	return c.JSON(fiber.Map{"accessToken": token, "profile": profile})
}

// HandleGetSession reports where the caller's session stands, letting the
// console re-check access after a role change without logging in again.
// GET /api/v1/auth/session
func (h *Handler) HandleGetSession(c *fiber.Ctx) error {
	ac := auth.NewContext()
	err := h.Verifier.Verify(c.UserContext(), ac, middleware.BearerToken(c))

	var fetchErr *auth.ProfileFetchError
	if errors.As(err, &fetchErr) {
		h.Log.Error("Failed to load profile for session", zap.String("userID", fetchErr.UserID), zap.Error(fetchErr.Err))
		return errorJSON(c, fiber.StatusInternalServerError, "Could not verify your profile")
	}

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{
		"state":   ac.State().String(),
		"profile": ac.Profile(),
	}})
}

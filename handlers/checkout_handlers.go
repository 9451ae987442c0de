package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tourbook/models"
	"tourbook/payment"
	"tourbook/repository"
	"tourbook/utils"
	"tourbook/validation"
)

// HandleCreateCheckoutSession starts a hosted checkout for a booking.
// POST /api/v1/checkout {amount, bookingId, propertyName} -> {sessionId}
func (h *Handler) HandleCreateCheckoutSession(c *fiber.Ctx) error {
	var req models.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx := c.UserContext()
	booking, err := h.Bookings.Get(ctx, req.BookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	if err != nil {
		h.Log.Error("Failed to load booking for checkout", zap.String("bookingID", req.BookingID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load booking"})
	}
	if booking.Status != models.BookingStatusPending {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": fmt.Sprintf("Booking is %s, not awaiting payment", booking.Status)})
	}
	if booking.TotalPrice == nil || *booking.TotalPrice <= 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Booking has no price to charge"})
	}

	// The amount charged is always the stored total.
	amount := utils.MinorUnits(*booking.TotalPrice)
	if req.Amount != amount {
		h.Log.Warn("Checkout amount does not match booking total",
			zap.String("bookingID", booking.ID), zap.Int64("requested", req.Amount), zap.Int64("total", amount))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("amount must equal the booking total of %d", amount)})
	}

	name := req.PropertyName
	if booking.PropertyName != nil && *booking.PropertyName != "" {
		name = *booking.PropertyName
	}

	sessionID, err := h.Checkout.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		AmountMinor:  amount,
		BookingID:    booking.ID,
		PropertyName: name,
	})
	if errors.Is(err, payment.ErrNotConfigured) {
		h.Log.Error("Checkout requested but payments are not configured")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		h.Log.Error("Checkout session creation failed", zap.String("bookingID", req.BookingID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create checkout session"})
	}

	if err := h.Bookings.AttachCheckoutSession(ctx, req.BookingID, sessionID); err != nil {
		h.Log.Warn("Could not record checkout session on booking",
			zap.String("bookingID", req.BookingID), zap.String("sessionID", sessionID), zap.Error(err))
	}

	return c.JSON(fiber.Map{"sessionId": sessionID})
}

// HandleGetReviews returns the guest reviews block.
// GET /api/v1/reviews -> {reviews, rating, totalRatings}
func (h *Handler) HandleGetReviews(c *fiber.Ctx) error {
	summary, err := h.Reviews.Get(c.UserContext())
	if err != nil {
		h.Log.Error("Failed to load reviews", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load reviews"})
	}
	return c.JSON(summary)
}

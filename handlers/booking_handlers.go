package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tourbook/export"
	"tourbook/models"
	"tourbook/repository"
	"tourbook/utils"
)

// HandleCreateBooking reserves a property in pending state.
// POST /api/v1/bookings
func (h *Handler) HandleCreateBooking(c *fiber.Ctx) error {
	var req models.CreateBookingRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	ctx := c.UserContext()
	property, err := h.Properties.Get(ctx, req.PropertyID)
	if err != nil {
		return storeError(c, h.Log, err, "Property", "fetch")
	}

	nights := utils.StayNights(req.CheckIn, req.CheckOut)
	if nights < 1 {
		return errorJSON(c, fiber.StatusBadRequest, "A stay must cover at least one night")
	}
	if property.MaxGuests > 0 && req.Guests > property.MaxGuests {
		return errorJSON(c, fiber.StatusBadRequest, fmt.Sprintf("%s sleeps at most %d guests", property.Name, property.MaxGuests))
	}

	total := utils.StayTotal(property.PricePerNight, nights)
	booking, err := h.Bookings.Create(ctx, models.Booking{
		PropertyID: req.PropertyID,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Guests:     req.Guests,
		TotalPrice: &total,
		Status:     models.BookingStatusPending,
	})
	if err != nil {
		return storeError(c, h.Log, err, "Booking", "create")
	}

	h.Log.Info("Booking created", zap.String("bookingID", booking.ID), zap.String("propertyID", booking.PropertyID))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": booking})
}

// HandleListBookings returns one page of bookings for the admin console.
// GET /api/v1/admin/bookings?status=&q=&page=&pageSize=
func (h *Handler) HandleListBookings(c *fiber.Ctx) error {
	filter := repository.BookingFilter{ListParams: listParams(c)}
	if status := c.Query("status"); status != "" {
		normalized, ok := utils.NormalizeBookingStatus(status)
		if !ok {
			return errorJSON(c, fiber.StatusBadRequest, fmt.Sprintf("Unknown booking status %q", status))
		}
		filter.Status = normalized
	}

	bookings, total, err := h.Bookings.List(c.UserContext(), filter)
	if err != nil {
		return storeError(c, h.Log, err, "Booking", "list")
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	return c.JSON(fiber.Map{"status": "success", "data": models.PaginatedResponse[models.Booking]{
		Data:       bookings,
		Pagination: filter.Pagination(total),
	}})
}

// GET /api/v1/admin/bookings/:id
func (h *Handler) HandleGetBooking(c *fiber.Ctx) error {
	booking, err := h.Bookings.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return storeError(c, h.Log, err, "Booking", "fetch")
	}
	return c.JSON(fiber.Map{"status": "success", "data": booking})
}

// HandleUpdateBookingStatus sets pending, confirmed or cancelled.
// PUT /api/v1/admin/bookings/:id/status
func (h *Handler) HandleUpdateBookingStatus(c *fiber.Ctx) error {
	var req models.UpdateBookingStatusRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}
	status, ok := utils.NormalizeBookingStatus(req.Status)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, fmt.Sprintf("Unknown booking status %q", req.Status))
	}

	booking, err := h.Bookings.SetStatus(c.UserContext(), c.Params("id"), status)
	if err != nil {
		return storeError(c, h.Log, err, "Booking", "update")
	}
	return c.JSON(fiber.Map{"status": "success", "data": booking})
}

// HandleExportBookings downloads every booking as an xlsx workbook.
// GET /api/v1/admin/bookings/export
func (h *Handler) HandleExportBookings(c *fiber.Ctx) error {
	bookings, err := h.Bookings.ListAll(c.UserContext())
	if err != nil {
		return storeError(c, h.Log, err, "Booking", "export")
	}

	data, err := export.BookingsWorkbook(bookings)
	if err != nil {
		h.Log.Error("Failed to render bookings workbook", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to export bookings")
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", h.now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

// HandleCheckoutWebhook confirms bookings whose checkout completed.
// POST /api/v1/checkout/webhook
func (h *Handler) HandleCheckoutWebhook(c *fiber.Ctx) error {
	event, err := h.Checkout.ParseWebhook(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		h.Log.Warn("Rejected checkout webhook", zap.Error(err))
		return errorJSON(c, fiber.StatusBadRequest, "Invalid webhook payload")
	}

	if event.Completed && event.BookingID != "" {
		_, err := h.Bookings.SetStatus(c.UserContext(), event.BookingID, models.BookingStatusConfirmed)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			h.Log.Error("Failed to confirm booking", zap.String("bookingID", event.BookingID), zap.Error(err))
			// Non-2xx makes the provider retry delivery.
			return errorJSON(c, fiber.StatusInternalServerError, "Failed to confirm booking")
		}
		if err != nil {
			h.Log.Warn("Checkout completed for unknown booking", zap.String("bookingID", event.BookingID))
		} else {
			h.Log.Info("Booking confirmed by checkout", zap.String("bookingID", event.BookingID), zap.String("sessionID", event.SessionID))
		}
	}

	return c.JSON(fiber.Map{"received": true})
}

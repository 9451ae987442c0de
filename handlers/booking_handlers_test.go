package handlers

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tourbook/models"
	"tourbook/payment"
)

func newBookingHandler() (*Handler, *fakeBookings) {
	bookings := &fakeBookings{all: []models.Booking{
		{ID: "b1", Status: models.BookingStatusPending, CreatedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
	}}
	h := &Handler{
		Properties: &fakeCatalog[models.Property]{items: map[string]*models.Property{"p1": {ID: "p1", Name: "Casa Azul", PricePerNight: 120, MaxGuests: 4}}},
		Bookings:   bookings,
		Log:        zap.NewNop(),
		Now:        func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) },
	}
	return h, bookings
}

func bookingBody(propertyID string) map[string]any {
	return map[string]any{
		"propertyId": propertyID,
		"guestName":  "Ana Silva",
		"guestEmail": "ana@example.com",
		"checkIn":    "2024-04-01T14:00:00Z",
		"checkOut":   "2024-04-05T11:00:00Z",
		"guests":     2,
		"totalPrice": 1,
	}
}

func TestCreateBooking(t *testing.T) {
	h, bookings := newBookingHandler()
	app := fiber.New()
	app.Post("/bookings", h.HandleCreateBooking)

	resp, body := do(t, app, "POST", "/bookings", bookingBody("p1"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "success", body["status"])

	require.NotNil(t, bookings.created)
	assert.Equal(t, models.BookingStatusPending, bookings.created.Status)
	assert.Equal(t, "p1", bookings.created.PropertyID)
	require.NotNil(t, bookings.created.TotalPrice)
	assert.InDelta(t, 480.0, *bookings.created.TotalPrice, 1e-9)
}

func TestCreateBookingRejectsImpossibleStays(t *testing.T) {
	h, bookings := newBookingHandler()
	app := fiber.New()
	app.Post("/bookings", h.HandleCreateBooking)

	sameDay := bookingBody("p1")
	sameDay["checkIn"] = "2024-04-01T09:00:00Z"
	sameDay["checkOut"] = "2024-04-01T18:00:00Z"
	resp, body := do(t, app, "POST", "/bookings", sameDay)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "A stay must cover at least one night", body["message"])

	crowded := bookingBody("p1")
	crowded["guests"] = 9
	resp, body = do(t, app, "POST", "/bookings", crowded)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Casa Azul sleeps at most 4 guests", body["message"])

	assert.Nil(t, bookings.created)
}

func TestCreateBookingUnknownProperty(t *testing.T) {
	h, bookings := newBookingHandler()
	app := fiber.New()
	app.Post("/bookings", h.HandleCreateBooking)

	resp, body := do(t, app, "POST", "/bookings", bookingBody("nope"))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Property not found", body["message"])
	assert.Nil(t, bookings.created)
}

func TestCreateBookingValidation(t *testing.T) {
	h, _ := newBookingHandler()
	app := fiber.New()
	app.Post("/bookings", h.HandleCreateBooking)

	req := bookingBody("p1")
	req["checkOut"] = "2024-03-30T11:00:00Z"
	req["guestEmail"] = "not-an-email"

	resp, body := do(t, app, "POST", "/bookings", req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Len(t, body["errors"], 2)
}

func TestUpdateBookingStatus(t *testing.T) {
	h, bookings := newBookingHandler()
	app := fiber.New()
	app.Put("/bookings/:id/status", h.HandleUpdateBookingStatus)

	resp, _ := do(t, app, "PUT", "/bookings/b1/status", map[string]any{"status": "Canceled"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, models.BookingStatusCancelled, bookings.statuses["b1"])

	resp, _ = do(t, app, "PUT", "/bookings/b1/status", map[string]any{"status": "refunded"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, "PUT", "/bookings/missing/status", map[string]any{"status": "confirmed"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListBookingsRejectsUnknownStatus(t *testing.T) {
	h, _ := newBookingHandler()
	app := fiber.New()
	app.Get("/bookings", h.HandleListBookings)

	resp, _ := do(t, app, "GET", "/bookings?status=archived", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := do(t, app, "GET", "/bookings?status=pending", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].(map[string]any)["data"], 1)
}

func TestExportBookings(t *testing.T) {
	h, _ := newBookingHandler()
	app := fiber.New()
	app.Get("/bookings/export", h.HandleExportBookings)

	resp, _ := do(t, app, "GET", "/bookings/export", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="bookings-2024-03-15.xlsx"`, resp.Header.Get("Content-Disposition"))
}

func TestCheckoutWebhookConfirmsBooking(t *testing.T) {
	h, bookings := newBookingHandler()
	h.Checkout = &fakeCheckout{event: &payment.CheckoutEvent{
		Type:      "checkout.session.completed",
		SessionID: "cs_test_1",
		BookingID: "b1",
		Completed: true,
	}}
	app := fiber.New()
	app.Post("/checkout/webhook", h.HandleCheckoutWebhook)

	resp, body := do(t, app, "POST", "/checkout/webhook", map[string]any{"id": "evt_1"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["received"])
	assert.Equal(t, models.BookingStatusConfirmed, bookings.statuses["b1"])
}

func TestCheckoutWebhookUnknownBookingIsAcknowledged(t *testing.T) {
	h, bookings := newBookingHandler()
	h.Checkout = &fakeCheckout{event: &payment.CheckoutEvent{BookingID: "gone", Completed: true}}
	app := fiber.New()
	app.Post("/checkout/webhook", h.HandleCheckoutWebhook)

	resp, _ := do(t, app, "POST", "/checkout/webhook", map[string]any{})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, bookings.statuses)
}

func TestCheckoutWebhookBadSignature(t *testing.T) {
	h, bookings := newBookingHandler()
	h.Checkout = &fakeCheckout{eventErr: payment.ErrWebhookNotConfigured}
	app := fiber.New()
	app.Post("/checkout/webhook", h.HandleCheckoutWebhook)

	resp, _ := do(t, app, "POST", "/checkout/webhook", map[string]any{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, bookings.statuses)
}

package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tourbook/auth"
	"tourbook/handlers"
	"tourbook/middleware"
	"tourbook/models"
)

// Catalogs groups the content handlers served publicly and to admins.
type Catalogs struct {
	Locations  *handlers.CatalogHandlers[models.Location]
	Properties *handlers.CatalogHandlers[models.Property]
	Hotels     *handlers.CatalogHandlers[models.Hotel]
	Tours      *handlers.CatalogHandlers[models.Tour]
}

type catalogRoutes interface {
	HandleList(c *fiber.Ctx) error
	HandleGet(c *fiber.Ctx) error
	HandleCreate(c *fiber.Ctx) error
	HandleUpdate(c *fiber.Ctx) error
	HandleDelete(c *fiber.Ctx) error
}

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App, h *handlers.Handler, catalogs Catalogs, verifier *auth.Verifier, log *zap.Logger) {
	app.Get("/healthz", h.HandleHealth)
	app.Get("/version", h.HandleVersion)

	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	authGroup := api.Group("/auth")
	authGroup.Post("/login", h.HandleLogin)
	authGroup.Get("/session", h.HandleGetSession)

	// --- Public Site Routes ---
	api.Post("/contacts", h.HandleCreateContact)
	api.Post("/bookings", h.HandleCreateBooking)
	api.Post("/checkout", h.HandleCreateCheckoutSession)
	api.Post("/checkout/webhook", h.HandleCheckoutWebhook)
	api.Get("/reviews", h.HandleGetReviews)

	// --- Admin Routes ---
	admin := api.Group("/admin", middleware.AdminRequired(verifier, log))

	// Dashboard
	admin.Get("/dashboard/summary", h.HandleGetDashboardSummary)

	// Catalog management, read-only copies are public
	for path, ch := range map[string]catalogRoutes{
		"/locations":  catalogs.Locations,
		"/properties": catalogs.Properties,
		"/hotels":     catalogs.Hotels,
		"/tours":      catalogs.Tours,
	} {
		api.Get(path, ch.HandleList)
		api.Get(path+"/:id", ch.HandleGet)

		admin.Get(path, ch.HandleList)
		admin.Get(path+"/:id", ch.HandleGet)
		admin.Post(path, ch.HandleCreate)
		admin.Put(path+"/:id", ch.HandleUpdate)
		admin.Delete(path+"/:id", ch.HandleDelete)
	}

	// Guest messages
	admin.Get("/contacts", h.HandleListContacts)
	admin.Put("/contacts/:id/read", h.HandleMarkContactRead)
	admin.Delete("/contacts/:id", h.HandleDeleteContact)

	// Bookings
	admin.Get("/bookings/export", h.HandleExportBookings) // Must be before /bookings/:id
	admin.Get("/bookings", h.HandleListBookings)
	admin.Get("/bookings/:id", h.HandleGetBooking)
	admin.Put("/bookings/:id/status", h.HandleUpdateBookingStatus)

	// --- Content Routes ---
	admin.Post("/content/describe", h.HandleDescribe)
}

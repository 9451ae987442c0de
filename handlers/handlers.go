package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tourbook/auth"
	"tourbook/content"
	"tourbook/models"
	"tourbook/payment"
	"tourbook/repository"
	"tourbook/reviews"
	"tourbook/validation"
)

// CatalogStore is CRUD over one content table.
type CatalogStore[T any] interface {
	List(ctx context.Context, params repository.ListParams) ([]T, int, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, fields map[string]any) (*T, error)
	Update(ctx context.Context, id string, fields map[string]any) (*T, error)
	Delete(ctx context.Context, id string) error
}

type BookingStore interface {
	Create(ctx context.Context, b models.Booking) (*models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, f repository.BookingFilter) ([]models.Booking, int, error)
	// ListAll returns every booking ordered newest first.
	ListAll(ctx context.Context) ([]models.Booking, error)
	SetStatus(ctx context.Context, id, status string) (*models.Booking, error)
	AttachCheckoutSession(ctx context.Context, id, sessionID string) error
}

type ContactStore interface {
	Create(ctx context.Context, c models.Contact) (*models.Contact, error)
	List(ctx context.Context, params repository.ListParams, unreadOnly bool) ([]models.Contact, int, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	CountUnread(ctx context.Context) (int, error)
}

type ProfileStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
}

type Counter interface {
	Count(ctx context.Context, table string) (int, error)
}

type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (string, error)
	ParseWebhook(payload []byte, signature string) (*payment.CheckoutEvent, error)
}

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type ReviewSource interface {
	Get(ctx context.Context) (reviews.Summary, error)
}

// Handler carries the dependencies shared by the non-catalog endpoints.
type Handler struct {
	DB         Pinger
	Properties CatalogStore[models.Property]
	Bookings   BookingStore
	Contacts   ContactStore
	Profiles   ProfileStore
	Counter    Counter
	Tokens     *auth.Tokens
	Verifier   *auth.Verifier
	Checkout   CheckoutProvider
	Reviews    ReviewSource
	// Drafter is nil when GEMINI_API_KEY is not configured.
	Drafter content.Drafter
	Log     *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func listParams(c *fiber.Ctx) repository.ListParams {
	return repository.ListParams{
		Page:       c.QueryInt("page", 1),
		PageSize:   c.QueryInt("pageSize", 10),
		LocationID: c.Query("location_id"),
		Search:     c.Query("q"),
	}.Normalize()
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"status": "error", "message": message})
}

// parseAndValidate decodes the body into req and runs struct validation,
// writing a 400 response on failure. ok is false when a response was sent.
func parseAndValidate(c *fiber.Ctx, req any) (ok bool, err error) {
	if err := c.BodyParser(req); err != nil {
		return false, errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validation.Struct(req); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": verrs.Error(),
				"errors":  verrs,
			})
		}
		return false, errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	return true, nil
}

// storeError maps repository errors to responses and logs unexpected ones.
func storeError(c *fiber.Ctx, log *zap.Logger, err error, entity, action string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, entity+" not found")
	case errors.Is(err, repository.ErrNoFields):
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Error("Store operation failed", zap.String("entity", entity), zap.String("action", action), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to "+action+" "+entity)
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"tourbook/auth"
	"tourbook/config"
	"tourbook/content"
	"tourbook/database"
	"tourbook/handlers"
	"tourbook/logger"
	"tourbook/middleware"
	"tourbook/models"
	"tourbook/payment"
	"tourbook/repository"
	"tourbook/reviews"
	"tourbook/routes"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("Database unavailable", zap.Error(err))
	}
	defer pool.Close()
	zlog.Info("Successfully connected to the database")

	tokens := auth.NewTokens(cfg.JWTSecret, auth.DefaultTokenTTL)
	profiles := repository.NewProfiles(pool)
	verifier := auth.NewVerifier(tokens, profiles)

	properties := repository.NewProperties(pool)

	h := &handlers.Handler{
		DB:         pool,
		Properties: properties,
		Bookings:   repository.NewBookings(pool),
		Contacts:   repository.NewContacts(pool),
		Profiles:   profiles,
		Counter:    repository.NewCounter(pool),
		Tokens:     tokens,
		Verifier:   verifier,
		Checkout: payment.NewStripe(payment.StripeConfig{
			SecretKey:     cfg.StripeSecretKey,
			WebhookSecret: cfg.StripeWebhookSecret,
			Currency:      cfg.Currency,
			SuccessURL:    cfg.SiteURL + "/booking/success",
			CancelURL:     cfg.SiteURL + "/booking/cancel",
		}),
		Reviews: newReviews(ctx, cfg, zlog),
		Log:     zlog,
	}
	if cfg.StripeSecretKey == "" {
		zlog.Warn("STRIPE_SECRET_KEY is not set, checkout requests will fail")
	}

	if cfg.GeminiAPIKey != "" {
		gemini, err := content.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			zlog.Error("Content drafting disabled", zap.Error(err))
		} else {
			defer gemini.Close()
			h.Drafter = gemini
		}
	}

	catalogs := routes.Catalogs{
		Locations:  handlers.NewCatalogHandlers[models.Location]("Location", repository.NewLocations(pool), zlog, "name", "slug"),
		Properties: handlers.NewCatalogHandlers[models.Property]("Property", properties, zlog, "location_id", "name", "property_type", "price_per_night"),
		Hotels:     handlers.NewCatalogHandlers[models.Hotel]("Hotel", repository.NewHotels(pool), zlog, "location_id", "name"),
		Tours:      handlers.NewCatalogHandlers[models.Tour]("Tour", repository.NewTours(pool), zlog, "location_id", "title", "price"),
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"message": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	app.Use(middleware.RequestLogger(zlog))

	// Setup routes
	routes.SetupRoutes(app, h, catalogs, verifier, zlog)

	go func() {
		<-ctx.Done()
		zlog.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zlog.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	// Start server
	zlog.Info("Server listening", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Error("Server stopped", zap.Error(err))
	}
}

// newReviews builds the reviews service and schedules its refresh. Without
// Places credentials it serves the sample reviews.
func newReviews(ctx context.Context, cfg *config.Config, zlog *zap.Logger) *reviews.Service {
	var fetcher reviews.Fetcher
	if cfg.GooglePlacesAPIKey != "" && cfg.GooglePlaceID != "" {
		places, err := reviews.NewPlacesFetcher(ctx, cfg.GooglePlacesAPIKey, cfg.GooglePlaceID)
		if err != nil {
			zlog.Warn("Google Places client unavailable, serving sample reviews", zap.Error(err))
		} else {
			fetcher = places
		}
	} else {
		zlog.Warn("GOOGLE_PLACES_API_KEY or GOOGLE_PLACE_ID not set, serving sample reviews")
	}

	service := reviews.NewService(fetcher, zlog)
	if fetcher != nil {
		scheduler, err := service.Schedule(cfg.ReviewsRefreshSchedule)
		if err != nil {
			zlog.Error("Invalid REVIEWS_REFRESH_SCHEDULE, reviews refresh on demand only",
				zap.String("schedule", cfg.ReviewsRefreshSchedule), zap.Error(err))
		} else {
			go func() {
				<-ctx.Done()
				<-scheduler.Stop().Done()
			}()
		}
	}
	return service
}

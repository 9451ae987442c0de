package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	JWTSecret   string
	CORSOrigins string

	// Site URL used to build checkout success/cancel redirects.
	SiteURL string

	StripeSecretKey     string
	StripeWebhookSecret string
	Currency            string

	GooglePlacesAPIKey     string
	GooglePlaceID          string
	ReviewsRefreshSchedule string

	GeminiAPIKey string
	GeminiModel  string
}

// Load reads a .env file when present and builds the Config from environment
// variables, falling back to defaults for optional keys.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:                   getEnv("PORT", "3000"),
		Environment:            getEnv("ENVIRONMENT", "development"),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		CORSOrigins:            getEnv("CORS_ORIGINS", "*"),
		SiteURL:                strings.TrimRight(getEnv("SITE_URL", "http://localhost:5173"), "/"),
		StripeSecretKey:        os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret:    os.Getenv("STRIPE_WEBHOOK_SECRET"),
		Currency:               strings.ToLower(getEnv("CURRENCY", "usd")),
		GooglePlacesAPIKey:     os.Getenv("GOOGLE_PLACES_API_KEY"),
		GooglePlaceID:          os.Getenv("GOOGLE_PLACE_ID"),
		ReviewsRefreshSchedule: getEnv("REVIEWS_REFRESH_SCHEDULE", "@every 30m"),
		GeminiAPIKey:           os.Getenv("GEMINI_API_KEY"),
		GeminiModel:            getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
	}

	return cfg, cfg.Validate()
}

// Validate reports every required key that is missing.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is not set"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

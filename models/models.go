package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

// JwtClaims identifies the signed-in profile. The role is never carried in
// the token; it is read from the profiles table on every admin request.
type JwtClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Profile roles.
const (
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// Profile is an account row. Admin access requires Role == RoleAdmin.
type Profile struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	FullName     *string   `json:"full_name,omitempty" db:"full_name"`
	Role         string    `json:"role" db:"role"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// --- Catalog ---

// Location is a destination shown on the public site.
type Location struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Country     *string   `json:"country,omitempty" db:"country"`
	Description *string   `json:"description,omitempty" db:"description"`
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
	IsFeatured  bool      `json:"is_featured" db:"is_featured"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Property is a bookable rental (villa, apartment, cabin) in a location.
type Property struct {
	ID            string    `json:"id" db:"id"`
	LocationID    string    `json:"location_id" db:"location_id"`
	Name          string    `json:"name" db:"name"`
	PropertyType  string    `json:"property_type" db:"property_type"`
	Description   *string   `json:"description,omitempty" db:"description"`
	PricePerNight float64   `json:"price_per_night" db:"price_per_night"`
	MaxGuests     int       `json:"max_guests" db:"max_guests"`
	Bedrooms      int       `json:"bedrooms" db:"bedrooms"`
	ImageURL      *string   `json:"image_url,omitempty" db:"image_url"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Hotel is a partner hotel listed for a location.
type Hotel struct {
	ID            string    `json:"id" db:"id"`
	LocationID    string    `json:"location_id" db:"location_id"`
	Name          string    `json:"name" db:"name"`
	Stars         int       `json:"stars" db:"stars"`
	Address       *string   `json:"address,omitempty" db:"address"`
	Description   *string   `json:"description,omitempty" db:"description"`
	PricePerNight float64   `json:"price_per_night" db:"price_per_night"`
	ImageURL      *string   `json:"image_url,omitempty" db:"image_url"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Tour is a guided trip departing from a location.
type Tour struct {
	ID           string    `json:"id" db:"id"`
	LocationID   string    `json:"location_id" db:"location_id"`
	Title        string    `json:"title" db:"title"`
	Description  *string   `json:"description,omitempty" db:"description"`
	DurationDays int       `json:"duration_days" db:"duration_days"`
	Price        float64   `json:"price" db:"price"`
	MaxGroupSize *int      `json:"max_group_size,omitempty" db:"max_group_size"`
	ImageURL     *string   `json:"image_url,omitempty" db:"image_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// --- Bookings ---

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking is a guest reservation of a property. TotalPrice is nullable in
// storage; readers must treat nil as zero.
type Booking struct {
	ID                string    `json:"id" db:"id"`
	PropertyID        string    `json:"property_id" db:"property_id"`
	PropertyName      *string   `json:"property_name,omitempty" db:"property_name"`
	GuestName         string    `json:"guest_name" db:"guest_name"`
	GuestEmail        string    `json:"guest_email" db:"guest_email"`
	CheckIn           time.Time `json:"check_in" db:"check_in"`
	CheckOut          time.Time `json:"check_out" db:"check_out"`
	Guests            int       `json:"guests" db:"guests"`
	TotalPrice        *float64  `json:"total_price,omitempty" db:"total_price"`
	Status            string    `json:"status" db:"status"`
	CheckoutSessionID *string   `json:"checkout_session_id,omitempty" db:"checkout_session_id"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// --- Contacts ---

// Contact is a message left by a guest through the contact form.
type Contact struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   *string   `json:"subject,omitempty" db:"subject"`
	Message   string    `json:"message" db:"message"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

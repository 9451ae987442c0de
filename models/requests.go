package models

import "time"

// --- API Request/Response Structs ---

// CreateBookingRequest defines the body for reserving a property. The total
// price is computed from the property's nightly rate.
type CreateBookingRequest struct {
	PropertyID string    `json:"propertyId" validate:"required"`
	GuestName  string    `json:"guestName" validate:"required,max=200"`
	GuestEmail string    `json:"guestEmail" validate:"required,email"`
	CheckIn    time.Time `json:"checkIn" validate:"required"`
	CheckOut   time.Time `json:"checkOut" validate:"required,gtfield=CheckIn"`
	Guests     int       `json:"guests" validate:"min=1,max=50"`
}

// UpdateBookingStatusRequest defines the body for PUT /admin/bookings/:id/status.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateContactRequest defines the body of the public contact form.
type CreateContactRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Email   string  `json:"email" validate:"required,email"`
	Subject *string `json:"subject,omitempty" validate:"omitempty,max=200"`
	Message string  `json:"message" validate:"required,max=5000"`
}

// CheckoutRequest is the body of POST /checkout. Amount is in minor units and
// must equal the booking's total.
type CheckoutRequest struct {
	Amount       int64  `json:"amount" validate:"gt=0"`
	BookingID    string `json:"bookingId" validate:"required"`
	PropertyName string `json:"propertyName" validate:"required"`
}

// DescribeRequest asks the content drafter for a marketing description.
type DescribeRequest struct {
	Kind         string   `json:"kind" validate:"required,oneof=location property hotel tour"`
	Name         string   `json:"name" validate:"required"`
	LocationName string   `json:"locationName,omitempty"`
	Keywords     []string `json:"keywords,omitempty" validate:"max=20"`
}

// MonthBucket is one month of the dashboard booking chart.
type MonthBucket struct {
	MonthLabel     string  `json:"month"`
	Year           int     `json:"year"`
	Count          int     `json:"count"`
	RelativeHeight float64 `json:"relative_height"`
}

// DashboardSummary defines the structure for the admin dashboard summary.
type DashboardSummary struct {
	TotalLocations  int           `json:"total_locations"`
	TotalProperties int           `json:"total_properties"`
	TotalHotels     int           `json:"total_hotels"`
	TotalTours      int           `json:"total_tours"`
	TotalBookings   int           `json:"total_bookings"`
	UnreadContacts  int           `json:"unread_contacts"`
	Revenue         float64       `json:"revenue"`
	MonthlyBookings []MonthBucket `json:"monthly_bookings"`
	RecentBookings  []Booking     `json:"recent_bookings"`
}

// --- Paginated Responses ---

// Pagination details for paginated responses.
type Pagination struct {
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
}

// PaginatedResponse wraps one page of any listing.
type PaginatedResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"tourbook/models"
)

const bookingColumns = `b.id, b.property_id, p.name AS property_name, b.guest_name, b.guest_email,
	b.check_in, b.check_out, b.guests, b.total_price, b.status, b.checkout_session_id,
	b.created_at, b.updated_at`

const bookingFrom = ` FROM bookings b LEFT JOIN properties p ON p.id = b.property_id`

// BookingFilter narrows the admin booking list.
type BookingFilter struct {
	ListParams
	Status string
}

// Bookings reads and writes the bookings table.
type Bookings struct {
	db DB
}

func NewBookings(db DB) *Bookings {
	return &Bookings{db: db}
}

// Create stores a new booking and returns it with generated columns filled in.
func (r *Bookings) Create(ctx context.Context, b models.Booking) (*models.Booking, error) {
	if b.Status == "" {
		b.Status = models.BookingStatusPending
	}
	var id string
	err := r.db.QueryRow(ctx, `
		INSERT INTO bookings (property_id, guest_name, guest_email, check_in, check_out, guests, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		b.PropertyID, b.GuestName, b.GuestEmail, b.CheckIn, b.CheckOut, b.Guests, b.TotalPrice, b.Status,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return r.Get(ctx, id)
}

// Get fetches one booking by id.
func (r *Bookings) Get(ctx context.Context, id string) (*models.Booking, error) {
	return r.one(ctx, "SELECT "+bookingColumns+bookingFrom+" WHERE b.id = $1", id)
}

// List returns one page of bookings, newest first.
func (r *Bookings) List(ctx context.Context, f BookingFilter) ([]models.Booking, int, error) {
	f.ListParams = f.ListParams.Normalize()

	var conditions []string
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		conditions = append(conditions, fmt.Sprintf("b.status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(b.guest_name ILIKE $%d OR b.guest_email ILIKE $%d)", len(args), len(args)))
	}
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM bookings b"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	query := "SELECT " + bookingColumns + bookingFrom + where +
		fmt.Sprintf(" ORDER BY b.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.PageSize, f.Offset())

	bookings, err := r.collect(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// ListAll returns every booking ordered newest first.
func (r *Bookings) ListAll(ctx context.Context) ([]models.Booking, error) {
	return r.collect(ctx, "SELECT "+bookingColumns+bookingFrom+" ORDER BY b.created_at DESC")
}

// SetStatus changes the booking status and returns the updated row.
func (r *Bookings) SetStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	tag, err := r.db.Exec(ctx, "UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2", status, id)
	if err != nil {
		return nil, fmt.Errorf("update booking %s status: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

// AttachCheckoutSession records the payment provider session for a booking.
func (r *Bookings) AttachCheckoutSession(ctx context.Context, id, sessionID string) error {
	tag, err := r.db.Exec(ctx, "UPDATE bookings SET checkout_session_id = $1, updated_at = NOW() WHERE id = $2", sessionID, id)
	if err != nil {
		return fmt.Errorf("attach checkout session to booking %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Bookings) collect(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	bookings, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Booking])
	if err != nil {
		return nil, fmt.Errorf("scan bookings: %w", err)
	}
	return bookings, nil
}

func (r *Bookings) one(ctx context.Context, query string, args ...any) (*models.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query booking: %w", err)
	}
	b, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Booking])
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"tourbook/models"
	"tourbook/payment"
	"tourbook/repository"
	"tourbook/reviews"
)

type fakeCatalog[T any] struct {
	items     map[string]*T
	listItems []T
	total     int
	err       error
	created   map[string]any
}

func (f *fakeCatalog[T]) List(_ context.Context, _ repository.ListParams) ([]T, int, error) {
	return f.listItems, f.total, f.err
}

func (f *fakeCatalog[T]) Get(_ context.Context, id string) (*T, error) {
	if f.err != nil {
		return nil, f.err
	}
	item, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return item, nil
}

func (f *fakeCatalog[T]) Create(_ context.Context, fields map[string]any) (*T, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = fields
	return new(T), nil
}

func (f *fakeCatalog[T]) Update(_ context.Context, id string, fields map[string]any) (*T, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(fields) == 0 {
		return nil, repository.ErrNoFields
	}
	item, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return item, nil
}

func (f *fakeCatalog[T]) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeBookings struct {
	mu       sync.Mutex
	all      []models.Booking
	listErr  error
	created  *models.Booking
	statuses map[string]string
	attached map[string]string
}

func (f *fakeBookings) Create(_ context.Context, b models.Booking) (*models.Booking, error) {
	b.ID = "b-new"
	f.created = &b
	return &b, nil
}

func (f *fakeBookings) Get(_ context.Context, id string) (*models.Booking, error) {
	for i := range f.all {
		if f.all[i].ID == id {
			return &f.all[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeBookings) List(_ context.Context, _ repository.BookingFilter) ([]models.Booking, int, error) {
	return f.all, len(f.all), f.listErr
}

func (f *fakeBookings) ListAll(context.Context) ([]models.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.all, nil
}

func (f *fakeBookings) SetStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	b, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statuses == nil {
		f.statuses = map[string]string{}
	}
	f.statuses[id] = status
	b.Status = status
	return b, nil
}

func (f *fakeBookings) AttachCheckoutSession(_ context.Context, id, sessionID string) error {
	if f.attached == nil {
		f.attached = map[string]string{}
	}
	f.attached[id] = sessionID
	return nil
}

type fakeContacts struct {
	unread   int
	err      error
	created  *models.Contact
	messages map[string]bool
}

func (f *fakeContacts) Create(_ context.Context, c models.Contact) (*models.Contact, error) {
	c.ID = "c-new"
	f.created = &c
	return &c, nil
}

func (f *fakeContacts) List(context.Context, repository.ListParams, bool) ([]models.Contact, int, error) {
	return nil, 0, f.err
}

func (f *fakeContacts) MarkRead(_ context.Context, id string) error {
	if !f.messages[id] {
		return repository.ErrNotFound
	}
	return nil
}

func (f *fakeContacts) Delete(_ context.Context, id string) error {
	return f.MarkRead(context.Background(), id)
}

func (f *fakeContacts) CountUnread(context.Context) (int, error) {
	return f.unread, f.err
}

type fakeCounter struct {
	counts map[string]int
	err    error
}

func (f *fakeCounter) Count(_ context.Context, table string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[table], nil
}

type fakeProfiles struct {
	byID map[string]*models.Profile
	err  error
}

func (f *fakeProfiles) FindByID(_ context.Context, id string) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProfiles) FindByEmail(_ context.Context, email string) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.byID {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeCheckout struct {
	sessionID string
	err       error
	got       payment.CheckoutRequest
	event     *payment.CheckoutEvent
	eventErr  error
}

func (f *fakeCheckout) CreateCheckoutSession(_ context.Context, req payment.CheckoutRequest) (string, error) {
	f.got = req
	return f.sessionID, f.err
}

func (f *fakeCheckout) ParseWebhook([]byte, string) (*payment.CheckoutEvent, error) {
	return f.event, f.eventErr
}

type fakeReviews struct {
	summary reviews.Summary
	err     error
}

func (f *fakeReviews) Get(context.Context) (reviews.Summary, error) {
	return f.summary, f.err
}

type fakeDrafter struct {
	text string
	err  error
	got  models.DescribeRequest
}

func (f *fakeDrafter) Draft(_ context.Context, req models.DescribeRequest) (string, error) {
	f.got = req
	return f.text, f.err
}

// do sends a request to app and decodes a JSON response body into a map.
func do(t *testing.T, app *fiber.App, method, path string, body any, headers ...string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	out := map[string]any{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

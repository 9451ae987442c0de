// Package payment creates hosted checkout sessions with Stripe and reads the
// webhook events that report their outcome.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
	"github.com/stripe/stripe-go/v72/webhook"
)

// ErrNotConfigured is returned when the Stripe keys are missing.
var ErrNotConfigured = errors.New("stripe is not configured: STRIPE_SECRET_KEY is empty")

// ErrWebhookNotConfigured is returned when webhook events cannot be verified.
var ErrWebhookNotConfigured = errors.New("stripe webhook is not configured: STRIPE_WEBHOOK_SECRET is empty")

// CheckoutRequest describes a single-item checkout. AmountMinor is in the
// currency's minor unit (cents).
type CheckoutRequest struct {
	AmountMinor  int64
	BookingID    string
	PropertyName string
}

// CheckoutEvent is the part of a webhook event the booking flow cares about.
type CheckoutEvent struct {
	Type      string
	SessionID string
	BookingID string
	Completed bool
}

// StripeConfig holds Stripe credentials and redirect targets.
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
	SuccessURL    string
	CancelURL     string
}

// Stripe implements checkout on Stripe Checkout.
type Stripe struct {
	api *client.API
	cfg StripeConfig
}

func NewStripe(cfg StripeConfig) *Stripe {
	if cfg.Currency == "" {
		cfg.Currency = string(stripe.CurrencyUSD)
	}
	s := &Stripe{cfg: cfg}
	if cfg.SecretKey != "" {
		s.api = client.New(cfg.SecretKey, nil)
	}
	return s
}

// CreateCheckoutSession returns the id of a new hosted checkout session.
func (s *Stripe) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error) {
	if s.api == nil {
		return "", ErrNotConfigured
	}

	params := s.sessionParams(req)
	params.Context = ctx

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.ID, nil
}

func (s *Stripe) sessionParams(req CheckoutRequest) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID:  stripe.String(req.BookingID),
		SuccessURL:         stripe.String(s.cfg.SuccessURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(s.cfg.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(s.cfg.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.PropertyName),
					},
					UnitAmount: stripe.Int64(req.AmountMinor),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata("bookingId", req.BookingID)
	return params
}

// ParseWebhook verifies the Stripe-Signature header and decodes the event.
func (s *Stripe) ParseWebhook(payload []byte, signature string) (*CheckoutEvent, error) {
	if s.cfg.WebhookSecret == "" {
		return nil, ErrWebhookNotConfigured
	}

	event, err := webhook.ConstructEvent(payload, signature, s.cfg.WebhookSecret)
	if err != nil {
		return nil, fmt.Errorf("verify webhook: %w", err)
	}

	out := &CheckoutEvent{Type: event.Type}
	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("decode checkout session: %w", err)
		}
		out.SessionID = sess.ID
		out.BookingID = sess.ClientReferenceID
		out.Completed = sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid
	}
	return out, nil
}

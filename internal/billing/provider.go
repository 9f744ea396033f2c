package billing

import (
	"context"
	"errors"
)

const (
	EventCheckoutCompleted    = "checkout.session.completed"
	EventInvoicePaymentFailed = "invoice.payment_failed"
)

// ErrBadSignature is returned when a webhook payload fails verification.
var ErrBadSignature = errors.New("invalid webhook signature")

// Event is the part of a payment-provider event the service acts on.
type Event struct {
	ID            string
	Type          string
	CustomerEmail string
}

// CheckoutProvider creates hosted checkout pages and verifies webhook payloads.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, customerEmail string) (url string, err error)
	ParseWebhook(payload []byte, signature string) (Event, error)
}

package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// StripeProvider implements CheckoutProvider with Stripe subscriptions.
type StripeProvider struct {
	api           *client.API
	webhookSecret string
	priceID       string
	successURL    string
	cancelURL     string
}

// NewStripeProvider builds a provider; frontendURL is where checkout returns to.
func NewStripeProvider(secretKey, webhookSecret, priceID, frontendURL string) *StripeProvider {
	base := strings.TrimRight(frontendURL, "/")
	return &StripeProvider{
		api:           client.New(secretKey, nil),
		webhookSecret: webhookSecret,
		priceID:       priceID,
		successURL:    base + "/success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:     base + "/pricing",
	}
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, customerEmail string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail: stripe.String(customerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.successURL),
		CancelURL:  stripe.String(p.cancelURL),
	}
	params.Context = ctx

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.URL, nil
}

func (p *StripeProvider) ParseWebhook(payload []byte, signature string) (Event, error) {
	evt, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrBadSignature, err)
	}

	out := Event{ID: evt.ID, Type: string(evt.Type)}
	if out.Type == EventCheckoutCompleted && evt.Data != nil {
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(evt.Data.Raw, &sess); err != nil {
			return Event{}, fmt.Errorf("decode checkout session: %w", err)
		}
		if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
			out.CustomerEmail = sess.CustomerDetails.Email
		} else {
			out.CustomerEmail = sess.CustomerEmail
		}
	}
	return out, nil
}

// Package billing sells the Pro subscription and applies payment events to user accounts.
package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"elevate-backend/internal/shared/auth"
	"elevate-backend/internal/shared/telemetry"
	"elevate-backend/internal/users"
)

var (
	ErrUnavailable = errors.New("billing not configured")
	ErrValidation  = errors.New("validation error")
)

// ProUpdater flips the subscription flag for the account owning an email.
type ProUpdater interface {
	SetPro(ctx context.Context, email string, isPro bool) error
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

type WebhookResponse struct {
	Received bool `json:"received"`
}

type Service struct {
	Provider CheckoutProvider
	Users    ProUpdater
}

func NewService(provider CheckoutProvider, users ProUpdater) *Service {
	return &Service{Provider: provider, Users: users}
}

// Checkout starts a subscription checkout for the caller.
func (s *Service) Checkout(ctx context.Context, id auth.Identity) (CheckoutResponse, error) {
	if s.Provider == nil {
		return CheckoutResponse{}, ErrUnavailable
	}
	email := strings.TrimSpace(id.Email)
	if email == "" {
		return CheckoutResponse{}, fmt.Errorf("%w: account has no email", ErrValidation)
	}
	url, err := s.Provider.CreateCheckoutSession(ctx, email)
	if err != nil {
		return CheckoutResponse{}, err
	}
	telemetry.Info("billing.checkout_created", map[string]any{"user_id": id.UserID})
	return CheckoutResponse{URL: url}, nil
}

// HandleWebhook verifies and applies one provider event.
// Events for unknown accounts are acknowledged so the provider stops retrying.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.Provider == nil {
		return ErrUnavailable
	}
	evt, err := s.Provider.ParseWebhook(payload, signature)
	if err != nil {
		return err
	}

	switch evt.Type {
	case EventCheckoutCompleted:
		if evt.CustomerEmail == "" {
			telemetry.Warn("billing.checkout_without_email", map[string]any{"event_id": evt.ID})
			return nil
		}
		if err := s.Users.SetPro(ctx, evt.CustomerEmail, true); err != nil {
			if errors.Is(err, users.ErrNotFound) {
				telemetry.Warn("billing.unknown_customer", map[string]any{"event_id": evt.ID, "email": evt.CustomerEmail})
				return nil
			}
			return fmt.Errorf("upgrade %s: %w", evt.CustomerEmail, err)
		}
		telemetry.Info("billing.upgraded", map[string]any{"event_id": evt.ID, "email": evt.CustomerEmail})
	case EventInvoicePaymentFailed:
		telemetry.Warn("billing.payment_failed", map[string]any{"event_id": evt.ID})
	default:
		telemetry.Info("billing.event_ignored", map[string]any{"event_id": evt.ID, "type": evt.Type})
	}
	return nil
}

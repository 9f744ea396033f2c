package billing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"
)

const testWebhookSecret = "whsec_test"

func signed(t *testing.T, payload string) (string, []byte) {
	t.Helper()
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: []byte(payload),
		Secret:  testWebhookSecret,
	})
	return sp.Header, sp.Payload
}

func TestStripeParseWebhookCheckoutCompleted(t *testing.T) {
	p := NewStripeProvider("sk_test", testWebhookSecret, "price_1", "https://app.example.com/")
	header, body := signed(t, `{"id":"evt_1","object":"event","type":"checkout.session.completed","data":{"object":{"id":"cs_1","object":"checkout.session","customer_email":"fallback@example.com","customer_details":{"email":"ann@example.com"}}}}`)

	evt, err := p.ParseWebhook(body, header)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", evt.ID)
	assert.Equal(t, EventCheckoutCompleted, evt.Type)
	assert.Equal(t, "ann@example.com", evt.CustomerEmail)
}

func TestStripeParseWebhookFallsBackToCustomerEmail(t *testing.T) {
	p := NewStripeProvider("sk_test", testWebhookSecret, "price_1", "https://app.example.com")
	header, body := signed(t, `{"id":"evt_2","object":"event","type":"checkout.session.completed","data":{"object":{"id":"cs_2","object":"checkout.session","customer_email":"bob@example.com"}}}`)

	evt, err := p.ParseWebhook(body, header)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", evt.CustomerEmail)
}

func TestStripeParseWebhookRejectsBadSignature(t *testing.T) {
	p := NewStripeProvider("sk_test", testWebhookSecret, "price_1", "https://app.example.com")
	_, err := p.ParseWebhook([]byte(`{"id":"evt_3","object":"event","type":"invoice.payment_failed","data":{"object":{}}}`), "t=1,v1=deadbeef")
	assert.True(t, errors.Is(err, ErrBadSignature))
}

func TestStripeURLs(t *testing.T) {
	p := NewStripeProvider("sk_test", testWebhookSecret, "price_1", "https://app.example.com/")
	assert.Equal(t, "https://app.example.com/success?session_id={CHECKOUT_SESSION_ID}", p.successURL)
	assert.Equal(t, "https://app.example.com/pricing", p.cancelURL)
}

package payments

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const testWebhookSecret = "whsec_test_secret"

func signStripePayload(payload []byte) string {
	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, testWebhookSecret)
	return fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig))
}

func stripeEventPayload(eventType, object string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":"evt_test_1","object":"event","api_version":%q,"type":%q,"data":{"object":%s}}`,
		stripe.APIVersion, eventType, object,
	))
}

func TestStripeVerifyWebhookCheckoutCompleted(t *testing.T) {
	g := NewStripeGateway("sk_test_x", testWebhookSecret)

	payload := stripeEventPayload(EventCheckoutCompleted,
		`{"id":"cs_1","object":"checkout.session","payment_intent":"pi_1","metadata":{"type":"audit_payment","audit_id":"rec-1"}}`)

	event, err := g.VerifyWebhook(payload, signStripePayload(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.ID != "evt_test_1" || event.Type != EventCheckoutCompleted {
		t.Fatalf("unexpected event envelope: %+v", event)
	}
	if event.MetadataType != MetadataTypeAudit || event.AuditID != "rec-1" {
		t.Fatalf("metadata not extracted: %+v", event)
	}
	if event.PaymentRef != "pi_1" {
		t.Fatalf("payment reference not extracted: %q", event.PaymentRef)
	}
}

func TestStripeVerifyWebhookPaymentIntentEvents(t *testing.T) {
	g := NewStripeGateway("sk_test_x", testWebhookSecret)

	for _, eventType := range []string{EventPaymentSucceeded, EventPaymentFailed} {
		payload := stripeEventPayload(eventType,
			`{"id":"pi_2","object":"payment_intent","metadata":{"type":"audit_payment","audit_id":"rec-2"}}`)

		event, err := g.VerifyWebhook(payload, signStripePayload(payload))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", eventType, err)
		}
		if event.AuditID != "rec-2" || event.PaymentRef != "pi_2" {
			t.Fatalf("%s: correlation fields not extracted: %+v", eventType, event)
		}
	}
}

func TestStripeVerifyWebhookUnknownTypePassesThrough(t *testing.T) {
	g := NewStripeGateway("sk_test_x", testWebhookSecret)

	payload := stripeEventPayload("invoice.created", `{"id":"in_1","object":"invoice"}`)
	event, err := g.VerifyWebhook(payload, signStripePayload(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Type != "invoice.created" || event.AuditID != "" {
		t.Fatalf("unexpected mapping for unknown type: %+v", event)
	}
}

func TestStripeVerifyWebhookRejectsBadSignature(t *testing.T) {
	g := NewStripeGateway("sk_test_x", testWebhookSecret)

	payload := stripeEventPayload(EventCheckoutCompleted, `{"id":"cs_1","object":"checkout.session"}`)

	if _, err := g.VerifyWebhook(payload, "t=1,v1=deadbeef"); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}

	// A valid signature over different bytes must not verify either.
	other := stripeEventPayload(EventCheckoutCompleted, `{"id":"cs_2","object":"checkout.session"}`)
	if _, err := g.VerifyWebhook(payload, signStripePayload(other)); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for tampered payload, got %v", err)
	}
}

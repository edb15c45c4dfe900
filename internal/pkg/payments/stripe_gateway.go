package payments

import (
	"context"
	"encoding/json"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/nexthub-ai/flowwing-cms-sub001/internal/pkg/env"
)

// StripeGateway implements Gateway against the Stripe API. It holds its own
// client.API instance instead of the package-level globals so tests and
// multiple configurations can coexist.
type StripeGateway struct {
	client        *client.API
	webhookSecret string
}

// NewStripeGateway creates a gateway from an API key and webhook secret.
func NewStripeGateway(apiKey, webhookSecret string) *StripeGateway {
	sc := &client.API{}
	sc.Init(apiKey, nil)

	return &StripeGateway{client: sc, webhookSecret: webhookSecret}
}

// NewStripeGatewayFromEnv creates a gateway from STRIPE_SECRET_KEY and
// STRIPE_WEBHOOK_SECRET.
func NewStripeGatewayFromEnv() *StripeGateway {
	return NewStripeGateway(
		env.GetEnv("STRIPE_SECRET_KEY", ""),
		env.GetEnv("STRIPE_WEBHOOK_SECRET", ""),
	)
}

// EnsureCustomer looks the customer up by email before creating one, so
// repeated checkouts for the same buyer reuse the existing Stripe customer.
func (g *StripeGateway) EnsureCustomer(ctx context.Context, email string) (string, error) {
	listParams := &stripe.CustomerListParams{Email: stripe.String(email)}
	listParams.Context = ctx
	listParams.Limit = stripe.Int64(1)

	iter := g.client.Customers.List(listParams)
	if iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("%w: listing customers: %v", ErrGateway, err)
	}

	createParams := &stripe.CustomerParams{Email: stripe.String(email)}
	createParams.Context = ctx
	cust, err := g.client.Customers.New(createParams)
	if err != nil {
		return "", fmt.Errorf("%w: creating customer: %v", ErrGateway, err)
	}
	return cust.ID, nil
}

// CreateCheckoutSession creates a one-time payment session. The audit id is
// attached to both the session and the payment intent, so either of the two
// success event types can be correlated back to the local record.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, p SessionParams) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		Customer:   stripe.String(p.CustomerID),
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(p.Currency),
					UnitAmount: stripe.Int64(p.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(ProductAuditName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{
				MetadataKeyType:    MetadataTypeAudit,
				MetadataKeyAuditID: p.AuditID,
			},
		},
	}
	params.Context = ctx
	params.AddMetadata(MetadataKeyType, MetadataTypeAudit)
	params.AddMetadata(MetadataKeyAuditID, p.AuditID)

	sess, err := g.client.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: creating checkout session: %v", ErrGateway, err)
	}
	return newSessionFromStripe(sess), nil
}

func (g *StripeGateway) GetCheckoutSession(ctx context.Context, id string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := g.client.CheckoutSessions.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("%w: retrieving checkout session: %v", ErrGateway, err)
	}
	return newSessionFromStripe(sess), nil
}

// VerifyWebhook validates the Stripe-Signature header against the raw body
// and maps the event into the neutral Event shape. The payload must be the
// exact bytes Stripe sent; re-serialized JSON breaks the signature.
func (g *StripeGateway) VerifyWebhook(payload []byte, sigHeader string) (*Event, error) {
	stripeEvent, err := webhook.ConstructEvent(payload, sigHeader, g.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	event := &Event{
		ID:      stripeEvent.ID,
		Type:    string(stripeEvent.Type),
		RawJSON: stripeEvent.Data.Raw,
	}

	switch event.Type {
	case EventCheckoutCompleted:
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(stripeEvent.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("parsing checkout session payload: %w", err)
		}
		event.MetadataType = sess.Metadata[MetadataKeyType]
		event.AuditID = sess.Metadata[MetadataKeyAuditID]
		if sess.PaymentIntent != nil {
			event.PaymentRef = sess.PaymentIntent.ID
		}
	case EventPaymentSucceeded, EventPaymentFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(stripeEvent.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("parsing payment intent payload: %w", err)
		}
		event.MetadataType = pi.Metadata[MetadataKeyType]
		event.AuditID = pi.Metadata[MetadataKeyAuditID]
		event.PaymentRef = pi.ID
	}

	return event, nil
}

func newSessionFromStripe(sess *stripe.CheckoutSession) *Session {
	s := &Session{
		ID:            sess.ID,
		URL:           sess.URL,
		PaymentStatus: string(sess.PaymentStatus),
		Metadata:      sess.Metadata,
	}
	if sess.PaymentIntent != nil {
		s.PaymentIntentID = sess.PaymentIntent.ID
	}
	return s
}

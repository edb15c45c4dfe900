package payments

import "context"

// Gateway wraps the external payment provider. Implementations translate
// provider types and errors into the package's neutral shapes so the
// checkout service and webhook processor stay testable without network
// calls.
type Gateway interface {
	// EnsureCustomer returns the provider customer id for the email,
	// creating the customer only when no existing one matches.
	EnsureCustomer(ctx context.Context, email string) (string, error)
	// CreateCheckoutSession creates a one-time payment session whose
	// metadata carries the audit record id.
	CreateCheckoutSession(ctx context.Context, p SessionParams) (*Session, error)
	// GetCheckoutSession retrieves a session by id.
	GetCheckoutSession(ctx context.Context, id string) (*Session, error)
	// VerifyWebhook checks the signature against the exact raw payload and
	// returns the parsed event. Verification failure returns
	// ErrInvalidSignature.
	VerifyWebhook(payload []byte, sigHeader string) (*Event, error)
}

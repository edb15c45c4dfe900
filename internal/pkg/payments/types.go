package payments

// Fixed one-time product sold through the checkout flow.
const (
	ProductAuditName       = "Social Media Audit"
	DefaultAuditPriceCents = 29900
	DefaultCurrency        = "usd"
)

// Metadata keys correlating Stripe objects with local audit records.
const (
	MetadataKeyType    = "type"
	MetadataKeyAuditID = "audit_id"
	MetadataTypeAudit  = "audit_payment"
)

// Provider event types the processor dispatches on.
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventPaymentSucceeded  = "payment_intent.succeeded"
	EventPaymentFailed     = "payment_intent.payment_failed"
)

// CheckoutRequest is the caller input for initiating an audit checkout.
type CheckoutRequest struct {
	Email         string            `json:"email" validate:"required,email"`
	CompanyName   string            `json:"company_name" validate:"required,min=2,max=200"`
	SocialHandles map[string]string `json:"social_handles"`
}

// CheckoutResult carries the gateway redirect URL and the local record id.
type CheckoutResult struct {
	URL     string `json:"url"`
	AuditID string `json:"audit_id"`
}

// SessionParams describes the checkout session to create at the gateway.
type SessionParams struct {
	CustomerID  string
	AuditID     string
	AmountCents int64
	Currency    string
	SuccessURL  string
	CancelURL   string
}

// SessionPaymentStatusPaid is the gateway's settled payment state for a
// checkout session.
const SessionPaymentStatusPaid = "paid"

// Session is the provider-neutral view of a gateway checkout session.
type Session struct {
	ID              string
	URL             string
	PaymentIntentID string
	PaymentStatus   string
	Metadata        map[string]string
}

// Event is the provider-neutral shape of a verified webhook event. AuditID
// and PaymentRef are extracted from provider metadata where present; an
// event the gateway implementation does not understand still carries ID,
// Type and RawJSON so it can be logged and acknowledged.
type Event struct {
	ID           string
	Type         string
	AuditID      string
	PaymentRef   string
	MetadataType string
	RawJSON      []byte
}

// Confirmation is the poller result for the post-checkout landing page.
// Pending means the webhook has not been observed yet and the user was given
// the soft "confirmation follows via email" answer.
type Confirmation struct {
	Verified bool   `json:"verified"`
	Pending  bool   `json:"pending"`
	Status   string `json:"status"`
}

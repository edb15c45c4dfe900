package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/nexthub-ai/flowwing-cms-sub001/app/models"
	"github.com/nexthub-ai/flowwing-cms-sub001/app/repository"
	"github.com/nexthub-ai/flowwing-cms-sub001/internal/pkg/env"
)

// CheckoutConfig carries the pricing and redirect configuration for the
// audit checkout flow.
type CheckoutConfig struct {
	BaseURL     string
	AmountCents int64
	Currency    string
}

// CheckoutConfigFromEnv reads the checkout configuration from the
// environment with the fixed audit price as default.
func CheckoutConfigFromEnv() CheckoutConfig {
	amount := int64(DefaultAuditPriceCents)
	if raw := env.GetEnv("AUDIT_PRICE_CENTS", ""); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			amount = v
		}
	}
	return CheckoutConfig{
		BaseURL:     env.GetEnv("PUBLIC_DOMAIN", "http://localhost:4000"),
		AmountCents: amount,
		Currency:    env.GetEnv("AUDIT_PRICE_CURRENCY", DefaultCurrency),
	}
}

// CheckoutService orchestrates audit checkout initiation: validate, persist
// the pending record, then create the gateway session that references it.
type CheckoutService struct {
	audits   repository.AuditRequestRepository
	gateway  Gateway
	cfg      CheckoutConfig
	validate *validator.Validate
}

// NewCheckoutService creates a checkout service from injected collaborators.
func NewCheckoutService(audits repository.AuditRequestRepository, gateway Gateway, cfg CheckoutConfig) *CheckoutService {
	if cfg.AmountCents <= 0 {
		cfg.AmountCents = DefaultAuditPriceCents
	}
	if cfg.Currency == "" {
		cfg.Currency = DefaultCurrency
	}
	return &CheckoutService{
		audits:   audits,
		gateway:  gateway,
		cfg:      cfg,
		validate: validator.New(),
	}
}

// InitiateAuditCheckout creates the pending audit record first and the
// gateway session second. The ordering matters: a webhook that arrives
// before the caller sees this response must already find the record. A
// session-create failure leaves the record orphaned in pending, which is
// harmless and visible in the dashboard.
func (s *CheckoutService) InitiateAuditCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	handles := ""
	if len(req.SocialHandles) > 0 {
		raw, err := json.Marshal(req.SocialHandles)
		if err != nil {
			return nil, fmt.Errorf("%w: social_handles not serializable", ErrInvalidRequest)
		}
		handles = string(raw)
	}

	record, err := models.NewAuditRequest(req.Email, req.CompanyName, handles)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if err := s.audits.Create(record); err != nil {
		return nil, fmt.Errorf("creating audit request: %w", err)
	}

	customerID, err := s.gateway.EnsureCustomer(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	sess, err := s.gateway.CreateCheckoutSession(ctx, SessionParams{
		CustomerID:  customerID,
		AuditID:     record.ID,
		AmountCents: s.cfg.AmountCents,
		Currency:    s.cfg.Currency,
		SuccessURL:  s.cfg.BaseURL + "/audit/payment/success?audit_id=" + record.ID + "&session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   s.cfg.BaseURL + "/audit/payment/cancelled?audit_id=" + record.ID,
	})
	if err != nil {
		return nil, err
	}

	return &CheckoutResult{URL: sess.URL, AuditID: record.ID}, nil
}

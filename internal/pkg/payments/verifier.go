package payments

import (
	"context"
	"time"

	"github.com/nexthub-ai/flowwing-cms-sub001/app/repository"
)

const defaultRecheckDelay = 2 * time.Second

// Verifier implements the post-checkout confirmation step. The redirect back
// from the gateway can race the webhook delivery, so an unpaid record gets
// exactly one bounded wait and re-check. If the webhook still has not landed,
// the checkout session is looked up at the gateway directly before falling
// back to the soft pending answer.
type Verifier struct {
	audits  repository.AuditRequestRepository
	gateway Gateway
	delay   time.Duration
	wait    func(ctx context.Context, d time.Duration) error
}

// NewVerifier creates a verifier with the default two second recheck delay.
// gateway may be nil to disable the direct session lookup.
func NewVerifier(audits repository.AuditRequestRepository, gateway Gateway) *Verifier {
	return &Verifier{
		audits:  audits,
		gateway: gateway,
		delay:   defaultRecheckDelay,
		wait:    waitWithContext,
	}
}

func waitWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ConfirmPayment reports whether payment for the record has been observed.
// The stored record stays the source of truth: a paid session seen at the
// gateway only upgrades the answer shown to the buyer, the status transition
// itself is left to the webhook. A record that is still unpaid everywhere is
// reported Verified with Pending set, so the buyer is told confirmation
// follows via email rather than being blocked on an event we do not control.
func (v *Verifier) ConfirmPayment(ctx context.Context, auditID, sessionID string) (*Confirmation, error) {
	record, err := v.audits.GetByID(auditID)
	if err != nil {
		return nil, err
	}
	if record.IsPaid() {
		return &Confirmation{Verified: true, Status: record.Status}, nil
	}

	if err := v.wait(ctx, v.delay); err != nil {
		return nil, err
	}

	record, err = v.audits.GetByID(auditID)
	if err != nil {
		return nil, err
	}
	if record.IsPaid() {
		return &Confirmation{Verified: true, Status: record.Status}, nil
	}

	if v.sessionPaid(ctx, auditID, sessionID) {
		return &Confirmation{Verified: true, Status: record.Status}, nil
	}

	return &Confirmation{Verified: true, Pending: true, Status: record.Status}, nil
}

// sessionPaid asks the gateway for the checkout session state. The session
// must carry the matching audit id in its metadata; a lookup error is treated
// as not paid and the soft fallback applies.
func (v *Verifier) sessionPaid(ctx context.Context, auditID, sessionID string) bool {
	if v.gateway == nil || sessionID == "" {
		return false
	}
	sess, err := v.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return false
	}
	if sess.Metadata[MetadataKeyAuditID] != auditID {
		return false
	}
	return sess.PaymentStatus == SessionPaymentStatusPaid
}

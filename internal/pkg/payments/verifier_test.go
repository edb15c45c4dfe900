package payments

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/nexthub-ai/flowwing-cms-sub001/app/models"
)

func noWait(ctx context.Context, d time.Duration) error { return nil }

func TestConfirmPaymentVerifiedImmediately(t *testing.T) {
	audits := newFakeAuditRepo()
	rec := pendingAudit(t, audits)
	if _, err := audits.MarkPaymentReceived(rec.ID, "pi_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := NewVerifier(audits, nil)
	waited := 0
	v.wait = func(ctx context.Context, d time.Duration) error {
		waited++
		return nil
	}

	conf, err := v.ConfirmPayment(context.Background(), rec.ID, "cs_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !conf.Verified || conf.Pending {
		t.Fatalf("expected immediate verification, got %+v", conf)
	}
	if waited != 0 {
		t.Fatalf("verifier waited despite paid record")
	}
}

func TestConfirmPaymentRecheckCatchesLateWebhook(t *testing.T) {
	audits := newFakeAuditRepo()
	rec := pendingAudit(t, audits)

	v := NewVerifier(audits, nil)
	// Simulate the webhook landing while the verifier waits.
	v.wait = func(ctx context.Context, d time.Duration) error {
		if _, err := audits.MarkPaymentReceived(rec.ID, "pi_1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return nil
	}

	conf, err := v.ConfirmPayment(context.Background(), rec.ID, "cs_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !conf.Verified || conf.Pending {
		t.Fatalf("expected verification after recheck, got %+v", conf)
	}
	if conf.Status != models.AuditStatusPaymentReceived {
		t.Fatalf("unexpected status %q", conf.Status)
	}
}

func TestConfirmPaymentSoftFallbackAfterSingleRecheck(t *testing.T) {
	audits := newFakeAuditRepo()
	rec := pendingAudit(t, audits)

	v := NewVerifier(audits, nil)
	waits := 0
	var waited time.Duration
	v.wait = func(ctx context.Context, d time.Duration) error {
		waits++
		waited = d
		return nil
	}

	conf, err := v.ConfirmPayment(context.Background(), rec.ID, "")
	if err != nil {
		t.Fatalf("verifier must not fail on a slow webhook: %v", err)
	}
	if !conf.Verified || !conf.Pending {
		t.Fatalf("expected soft pending verification, got %+v", conf)
	}
	if waits != 1 {
		t.Fatalf("expected exactly one bounded wait, got %d", waits)
	}
	if waited != defaultRecheckDelay {
		t.Fatalf("expected default delay %v, got %v", defaultRecheckDelay, waited)
	}
}

func TestConfirmPaymentGatewayLookupConfirmsLateWebhook(t *testing.T) {
	audits := newFakeAuditRepo()
	rec := pendingAudit(t, audits)

	gateway := newFakeGateway()
	gateway.setSessionState(&Session{
		ID:            "cs_1",
		PaymentStatus: SessionPaymentStatusPaid,
		Metadata:      map[string]string{MetadataKeyAuditID: rec.ID},
	})

	v := NewVerifier(audits, gateway)
	v.wait = noWait

	conf, err := v.ConfirmPayment(context.Background(), rec.ID, "cs_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !conf.Verified || conf.Pending {
		t.Fatalf("paid session must upgrade the answer, got %+v", conf)
	}

	// The status transition stays with the webhook.
	stored, _ := audits.GetByID(rec.ID)
	if stored.Status != models.AuditStatusPending {
		t.Fatalf("verifier mutated the record to %q", stored.Status)
	}
}

func TestConfirmPaymentGatewayLookupRejectsForeignSession(t *testing.T) {
	audits := newFakeAuditRepo()
	rec := pendingAudit(t, audits)

	gateway := newFakeGateway()
	gateway.setSessionState(&Session{
		ID:            "cs_other",
		PaymentStatus: SessionPaymentStatusPaid,
		Metadata:      map[string]string{MetadataKeyAuditID: "someone-else"},
	})

	v := NewVerifier(audits, gateway)
	v.wait = noWait

	conf, err := v.ConfirmPayment(context.Background(), rec.ID, "cs_other")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !conf.Pending {
		t.Fatalf("session for another record must not confirm, got %+v", conf)
	}
}

func TestConfirmPaymentGatewayLookupErrorFallsBackToPending(t *testing.T) {
	audits := newFakeAuditRepo()
	rec := pendingAudit(t, audits)

	gateway := newFakeGateway()
	gateway.failLookup = true

	v := NewVerifier(audits, gateway)
	v.wait = noWait

	conf, err := v.ConfirmPayment(context.Background(), rec.ID, "cs_1")
	if err != nil {
		t.Fatalf("lookup failure must not fail the landing page: %v", err)
	}
	if !conf.Verified || !conf.Pending {
		t.Fatalf("expected soft pending verification, got %+v", conf)
	}
}

func TestConfirmPaymentCancelledContextAbortsWait(t *testing.T) {
	audits := newFakeAuditRepo()
	rec := pendingAudit(t, audits)

	v := NewVerifier(audits, nil)
	v.delay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := v.ConfirmPayment(ctx, rec.ID, "")
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("wait did not honor cancellation, took %v", elapsed)
	}
}

func TestConfirmPaymentUnknownRecord(t *testing.T) {
	audits := newFakeAuditRepo()
	v := NewVerifier(audits, nil)
	v.wait = noWait

	if _, err := v.ConfirmPayment(context.Background(), "missing", ""); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected record-not-found error, got %v", err)
	}
}

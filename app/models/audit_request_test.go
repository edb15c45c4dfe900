package models

import "testing"

func TestAuditStatusRankOrdering(t *testing.T) {
	order := []string{
		AuditStatusPaymentReceived,
		AuditStatusPlanning,
		AuditStatusInProgress,
		AuditStatusReview,
		AuditStatusCompleted,
	}

	prev := AuditStatusRank(AuditStatusPending)
	for _, status := range order {
		if AuditStatusRank(status) <= prev {
			t.Fatalf("expected %q to outrank previous status", status)
		}
		prev = AuditStatusRank(status)
	}

	if AuditStatusRank(AuditStatusPaymentFailed) != AuditStatusRank(AuditStatusPending) {
		t.Fatalf("payment_failed must rank beside pending, not ahead of it")
	}
	if AuditStatusRank("bogus") != -1 {
		t.Fatalf("unknown status must rank -1")
	}
}

func TestNextAuditStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: AuditStatusPaymentReceived, want: AuditStatusPlanning},
		{in: AuditStatusPlanning, want: AuditStatusInProgress},
		{in: AuditStatusInProgress, want: AuditStatusReview},
		{in: AuditStatusReview, want: AuditStatusCompleted},
		{in: AuditStatusCompleted, want: ""},
		{in: AuditStatusPending, want: ""},
		{in: AuditStatusPaymentFailed, want: ""},
	}

	for _, tt := range tests {
		if got := NextAuditStatus(tt.in); got != tt.want {
			t.Fatalf("NextAuditStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewAuditRequest(t *testing.T) {
	a, err := NewAuditRequest("a@b.com", "Acme", `{"instagram":"@acme"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == "" {
		t.Fatalf("expected generated id")
	}
	if a.Status != AuditStatusPending {
		t.Fatalf("expected pending status, got %q", a.Status)
	}
	if a.IsPaid() {
		t.Fatalf("fresh request must not be paid")
	}

	if _, err := NewAuditRequest("", "Acme", ""); err == nil {
		t.Fatalf("expected validation error for missing email")
	}
	if _, err := NewAuditRequest("a@b.com", "", ""); err == nil {
		t.Fatalf("expected validation error for missing company name")
	}
}

func TestAuditRequestIsPaid(t *testing.T) {
	ref := "pi_123"
	a := &AuditRequest{Status: AuditStatusPending, StripePaymentID: &ref}
	if !a.IsPaid() {
		t.Fatalf("expected paid when reference is set")
	}

	b := &AuditRequest{Status: AuditStatusPlanning}
	if !b.IsPaid() {
		t.Fatalf("expected paid for post-payment status")
	}

	c := &AuditRequest{Status: AuditStatusPaymentFailed}
	if c.IsPaid() {
		t.Fatalf("failed payment must not count as paid")
	}
}

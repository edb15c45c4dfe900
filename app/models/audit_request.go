package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Audit request lifecycle statuses. Payment outcomes branch off pending,
// everything after payment_received is advanced by agency staff.
const (
	AuditStatusPending         = "pending"
	AuditStatusPaymentReceived = "payment_received"
	AuditStatusPaymentFailed   = "payment_failed"
	AuditStatusPlanning        = "planning"
	AuditStatusInProgress      = "in_progress"
	AuditStatusReview          = "review"
	AuditStatusCompleted       = "completed"
)

// AuditRequest is a one-time social media audit purchase. The ID is assigned
// locally before any Stripe object references it, so a webhook that races the
// checkout response can always resolve its record.
type AuditRequest struct {
	ID            string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email         string `gorm:"type:varchar(200);not null;index" json:"email" validate:"required,email,min=5,max=200"`
	CompanyName   string `gorm:"type:varchar(200);not null" json:"company_name" validate:"required,min=2,max=200"`
	SocialHandles string `gorm:"type:text" json:"social_handles"`
	Status        string `gorm:"type:varchar(32);not null;default:'pending';index" json:"status" validate:"oneof=pending payment_received payment_failed planning in_progress review completed"`
	// StripePaymentID carries a unique index so one payment reference can
	// never be attached to two audit records, even via a misrouted event.
	StripePaymentID *string   `gorm:"type:varchar(191);uniqueIndex" json:"stripe_payment_id,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *AuditRequest) Validate() error {
	v := validator.New()
	return v.Struct(a)
}

// NewAuditRequest builds a pending audit request with a fresh ID.
func NewAuditRequest(email, companyName, socialHandles string) (*AuditRequest, error) {
	a := &AuditRequest{
		ID:            uuid.NewString(),
		Email:         email,
		CompanyName:   companyName,
		SocialHandles: socialHandles,
		Status:        AuditStatusPending,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// IsPaid reports whether payment has been observed for this request.
func (a *AuditRequest) IsPaid() bool {
	if a.StripePaymentID != nil && *a.StripePaymentID != "" {
		return true
	}
	return AuditStatusRank(a.Status) >= AuditStatusRank(AuditStatusPaymentReceived)
}

// AuditStatusRank orders the main lifecycle. payment_failed sits beside
// pending: it is a dead end unless a success event later supersedes it.
func AuditStatusRank(status string) int {
	switch status {
	case AuditStatusPending, AuditStatusPaymentFailed:
		return 0
	case AuditStatusPaymentReceived:
		return 1
	case AuditStatusPlanning:
		return 2
	case AuditStatusInProgress:
		return 3
	case AuditStatusReview:
		return 4
	case AuditStatusCompleted:
		return 5
	default:
		return -1
	}
}

// NextAuditStatus returns the staff-advanceable successor of a status, or ""
// when there is none (payment transitions are webhook-only and not listed).
func NextAuditStatus(status string) string {
	switch status {
	case AuditStatusPaymentReceived:
		return AuditStatusPlanning
	case AuditStatusPlanning:
		return AuditStatusInProgress
	case AuditStatusInProgress:
		return AuditStatusReview
	case AuditStatusReview:
		return AuditStatusCompleted
	default:
		return ""
	}
}

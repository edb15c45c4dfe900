package repository

import (
	"gorm.io/gorm"

	"github.com/nexthub-ai/flowwing-cms-sub001/app/models"
)

// auditRequestRepository implements AuditRequestRepository using GORM
type auditRequestRepository struct {
	db *gorm.DB
}

// NewAuditRequestRepository creates a new audit request repository instance
func NewAuditRequestRepository(db *gorm.DB) AuditRequestRepository {
	return &auditRequestRepository{db: db}
}

func (r *auditRequestRepository) Create(a *models.AuditRequest) error {
	return r.db.Create(a).Error
}

func (r *auditRequestRepository) GetByID(id string) (*models.AuditRequest, error) {
	var a models.AuditRequest
	if err := r.db.Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// MarkPaymentReceived applies pending/payment_failed -> payment_received as a
// single guarded UPDATE. A success event always wins over an earlier failure
// event, and a record that already carries this exact reference is a no-op
// (RowsAffected = 0) so redeliveries never touch timestamps again.
func (r *auditRequestRepository) MarkPaymentReceived(id, paymentRef string) (bool, error) {
	updates := map[string]interface{}{
		"status": models.AuditStatusPaymentReceived,
	}

	tx := r.db.Model(&models.AuditRequest{})
	if paymentRef != "" {
		updates["stripe_payment_id"] = paymentRef
		tx = tx.Where(
			"id = ? AND (status IN ? OR (status = ? AND stripe_payment_id IS NULL))",
			id,
			[]string{models.AuditStatusPending, models.AuditStatusPaymentFailed},
			models.AuditStatusPaymentReceived,
		)
	} else {
		// Event carried no usable reference; only move the status forward.
		tx = tx.Where(
			"id = ? AND status IN ?",
			id,
			[]string{models.AuditStatusPending, models.AuditStatusPaymentFailed},
		)
	}

	res := tx.Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkPaymentFailed only fires for records still in pending. An already paid
// record stays paid: a late failure event is stale and must not demote it.
func (r *auditRequestRepository) MarkPaymentFailed(id string) (bool, error) {
	res := r.db.Model(&models.AuditRequest{}).
		Where("id = ? AND status = ?", id, models.AuditStatusPending).
		Update("status", models.AuditStatusPaymentFailed)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *auditRequestRepository) AdvanceStatus(id, from, to string) (bool, error) {
	res := r.db.Model(&models.AuditRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *auditRequestRepository) List(offset, limit int) ([]models.AuditRequest, error) {
	var audits []models.AuditRequest
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&audits).Error
	return audits, err
}

func (r *auditRequestRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.AuditRequest{}).Count(&count).Error
	return count, err
}

func (r *auditRequestRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.AuditRequest{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

package repository

import (
	"github.com/nexthub-ai/flowwing-cms-sub001/app/models"
)

// AuditRequestRepository defines database operations for audit purchase
// requests. Payment transitions are conditional writes: they only take
// effect when the stored status allows the transition, which is what keeps
// concurrent duplicate webhook deliveries from corrupting state.
type AuditRequestRepository interface {
	Create(a *models.AuditRequest) error
	GetByID(id string) (*models.AuditRequest, error)
	// MarkPaymentReceived transitions a record to payment_received and
	// attaches the payment reference. Returns applied=false when the stored
	// state did not allow the write (duplicate delivery, unknown id, or a
	// conflicting reference already present).
	MarkPaymentReceived(id, paymentRef string) (applied bool, err error)
	// MarkPaymentFailed transitions pending to payment_failed. A record that
	// already reached payment_received is left untouched.
	MarkPaymentFailed(id string) (applied bool, err error)
	// AdvanceStatus moves a record from exactly `from` to `to` (staff
	// pipeline progression).
	AdvanceStatus(id, from, to string) (applied bool, err error)
	List(offset, limit int) ([]models.AuditRequest, error)
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
}

// WebhookEventRepository defines database operations for webhook event
// deduplication records.
type WebhookEventRepository interface {
	CreateIfNotExists(event *models.WebhookEvent) (created bool, stored *models.WebhookEvent, err error)
	MarkProcessed(id uint, processingError string) error
}

// UserRepository defines the interface for staff account operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Count() (int64, error)
}

// ClientRepository defines the interface for agency client operations
type ClientRepository interface {
	Create(client *models.Client) error
	GetByID(id uint) (*models.Client, error)
	GetAll() ([]models.Client, error)
	Update(client *models.Client) error
	Delete(id uint) error
	Count() (int64, error)
}

// ContentPostRepository defines the interface for CMS content operations
type ContentPostRepository interface {
	Create(post *models.ContentPost) error
	GetByID(id uint) (*models.ContentPost, error)
	GetAll() ([]models.ContentPost, error)
	GetByClientID(clientID uint) ([]models.ContentPost, error)
	Update(post *models.ContentPost) error
	Delete(id uint) error
	Count() (int64, error)
}

// PageRepository defines the interface for static page operations
type PageRepository interface {
	Create(page *models.Page) error
	GetByID(id uint) (*models.Page, error)
	GetBySlug(slug string) (*models.Page, error)
	GetAll() ([]models.Page, error)
	GetActive() ([]models.Page, error)
	SlugExists(slug string) (bool, error)
	SlugExistsExceptID(slug string, id uint) (bool, error)
	Update(page *models.Page) error
	Delete(id uint) error
}

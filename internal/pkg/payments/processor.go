package payments

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/nexthub-ai/flowwing-cms-sub001/app/models"
	"github.com/nexthub-ai/flowwing-cms-sub001/app/repository"
)

// Mailer sends a notification email. The processor treats it as best-effort.
type Mailer interface {
	Send(to, subject, body string) error
}

// MailerFunc adapts a plain function to the Mailer interface.
type MailerFunc func(to, subject, body string) error

func (f MailerFunc) Send(to, subject, body string) error {
	return f(to, subject, body)
}

// Outcome reports what a webhook delivery did. Every outcome is acknowledged
// with 200 upstream; only errors signal the gateway to retry.
type Outcome struct {
	Duplicate bool
	Ignored   bool
	Applied   bool
}

// WebhookProcessor applies verified gateway events to audit records. It is
// safe under at-least-once, out-of-order and concurrent delivery: the event
// log deduplicates by provider event id, and the audit repository's guarded
// updates enforce the forward-only state machine at the storage layer.
type WebhookProcessor struct {
	gateway Gateway
	audits  repository.AuditRequestRepository
	events  repository.WebhookEventRepository
	mailer  Mailer
}

// NewWebhookProcessor creates a processor from injected collaborators.
// mailer may be nil to disable confirmation emails.
func NewWebhookProcessor(gateway Gateway, audits repository.AuditRequestRepository, events repository.WebhookEventRepository, mailer Mailer) *WebhookProcessor {
	return &WebhookProcessor{
		gateway: gateway,
		audits:  audits,
		events:  events,
		mailer:  mailer,
	}
}

// Process verifies, deduplicates and dispatches one webhook delivery.
// Signature failures return ErrInvalidSignature before anything is written.
// Any other returned error means processing genuinely failed and the
// delivery should be retried by the sender.
func (p *WebhookProcessor) Process(ctx context.Context, rawBody []byte, sigHeader string) (*Outcome, error) {
	event, err := p.gateway.VerifyWebhook(rawBody, sigHeader)
	if err != nil {
		return nil, err
	}

	eventID := event.ID
	if eventID == "" {
		sum := sha256.Sum256(rawBody)
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	created, stored, err := p.events.CreateIfNotExists(&models.WebhookEvent{
		Provider:        models.WebhookProviderStripe,
		ProviderEventID: eventID,
		EventType:       event.Type,
		PayloadJSON:     string(rawBody),
		SignatureValid:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("persisting webhook event: %w", err)
	}
	if !created {
		// An existing row only counts as a completed duplicate when its
		// dispatch finished cleanly. A nil ProcessedAt or a recorded error
		// means an earlier delivery died between insert and apply, so the
		// redelivery must run dispatch again. The guarded audit updates
		// keep that re-run idempotent.
		if stored.ProcessedAt != nil && stored.ProcessingError == "" {
			return &Outcome{Duplicate: true}, nil
		}
	}

	outcome, procErr := p.dispatch(ctx, event)
	procMsg := ""
	if procErr != nil {
		procMsg = procErr.Error()
	}
	if err := p.events.MarkProcessed(stored.ID, procMsg); err != nil {
		log.Printf("failed to mark webhook event %d processed: %v", stored.ID, err)
	}
	if procErr != nil {
		return nil, procErr
	}
	return outcome, nil
}

func (p *WebhookProcessor) dispatch(ctx context.Context, event *Event) (*Outcome, error) {
	switch event.Type {
	case EventCheckoutCompleted:
		if event.MetadataType != MetadataTypeAudit || event.AuditID == "" {
			return &Outcome{Ignored: true}, nil
		}
		return p.applyPaymentReceived(ctx, event)

	case EventPaymentSucceeded:
		// The payment intent event may arrive before, after or instead of
		// the checkout completion; both converge on the same transition.
		if event.AuditID == "" {
			return &Outcome{Ignored: true}, nil
		}
		return p.applyPaymentReceived(ctx, event)

	case EventPaymentFailed:
		if event.AuditID == "" {
			return &Outcome{Ignored: true}, nil
		}
		applied, err := p.audits.MarkPaymentFailed(event.AuditID)
		if err != nil {
			return nil, fmt.Errorf("marking payment failed: %w", err)
		}
		if !applied {
			// Stale failure for a paid record, redelivery, or unknown id.
			return &Outcome{Ignored: true}, nil
		}
		return &Outcome{Applied: true}, nil

	default:
		// Unrecognized event types are acknowledged without side effects.
		return &Outcome{Ignored: true}, nil
	}
}

func (p *WebhookProcessor) applyPaymentReceived(ctx context.Context, event *Event) (*Outcome, error) {
	applied, err := p.audits.MarkPaymentReceived(event.AuditID, event.PaymentRef)
	if err != nil {
		return nil, fmt.Errorf("marking payment received: %w", err)
	}
	if !applied {
		// Either the record is already paid (idempotent redelivery) or the
		// id is unknown (event for a foreign record). Both are acknowledged;
		// only a failing lookup is a real error.
		if _, err := p.audits.GetByID(event.AuditID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("webhook references unknown audit request %s", event.AuditID)
				return &Outcome{Ignored: true}, nil
			}
			return nil, fmt.Errorf("looking up audit request: %w", err)
		}
		return &Outcome{Ignored: true}, nil
	}

	p.sendConfirmation(event.AuditID)
	return &Outcome{Applied: true}, nil
}

// sendConfirmation emails the buyer after a successful transition. Failures
// are logged and never bubble up: the stored record is the source of truth.
func (p *WebhookProcessor) sendConfirmation(auditID string) {
	if p.mailer == nil {
		return
	}
	record, err := p.audits.GetByID(auditID)
	if err != nil {
		log.Printf("cannot load audit request %s for confirmation mail: %v", auditID, err)
		return
	}
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>we received your payment for the %s. Our team will start planning shortly.</p>",
		record.CompanyName, ProductAuditName,
	)
	if err := p.mailer.Send(record.Email, "Payment received - "+ProductAuditName, body); err != nil {
		log.Printf("confirmation mail for audit request %s failed: %v", auditID, err)
	}
}

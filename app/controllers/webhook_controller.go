package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nexthub-ai/flowwing-cms-sub001/app/repository"
	"github.com/nexthub-ai/flowwing-cms-sub001/internal/pkg/database"
	"github.com/nexthub-ai/flowwing-cms-sub001/internal/pkg/mail"
	"github.com/nexthub-ai/flowwing-cms-sub001/internal/pkg/payments"
)

// WebhookController receives payment provider callbacks. Requests are
// authenticated by signature inside the processor, never by session.
type WebhookController struct {
	processor *payments.WebhookProcessor
}

// NewWebhookController creates a webhook controller around a processor.
func NewWebhookController(processor *payments.WebhookProcessor) *WebhookController {
	return &WebhookController{processor: processor}
}

var webhookController *WebhookController

// InitializeWebhookController wires the webhook processor against the live
// database, the Stripe gateway and the SMTP mailer.
func InitializeWebhookController() {
	factory := repository.NewFactory(database.GetDB())

	processor := payments.NewWebhookProcessor(
		payments.NewStripeGatewayFromEnv(),
		factory.GetAuditRequestRepository(),
		factory.GetWebhookEventRepository(),
		payments.MailerFunc(mail.SendMail),
	)
	webhookController = NewWebhookController(processor)
}

// GetWebhookController returns the initialized webhook controller instance
func GetWebhookController() *WebhookController {
	return webhookController
}

// HandleStripeWebhook processes a Stripe event delivery. Duplicates and
// events for unknown records are acknowledged with 200 so the provider
// stops retrying; only signature failures and storage errors are rejected.
func (wc *WebhookController) HandleStripeWebhook(c *fiber.Ctx) error {
	body := make([]byte, len(c.BodyRaw()))
	copy(body, c.BodyRaw())
	signature := c.Get("Stripe-Signature")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	outcome, err := wc.processor.Process(ctx, body, signature)
	if err != nil {
		if errors.Is(err, payments.ErrInvalidSignature) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid_signature",
			})
		}
		log.Printf("[Webhook] stripe event processing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "processing_failed",
		})
	}

	if outcome.Duplicate {
		log.Printf("[Webhook] duplicate stripe event acknowledged")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
}

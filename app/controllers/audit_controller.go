package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/nexthub-ai/flowwing-cms-sub001/app/repository"
	"github.com/nexthub-ai/flowwing-cms-sub001/internal/pkg/database"
	"github.com/nexthub-ai/flowwing-cms-sub001/internal/pkg/payments"
)

// AuditController handles the audit purchase flow: checkout initiation, the
// post-payment landing pages and payment confirmation polling.
type AuditController struct {
	checkout *payments.CheckoutService
	verifier *payments.Verifier
}

// NewAuditController creates an audit controller from injected collaborators.
func NewAuditController(checkout *payments.CheckoutService, verifier *payments.Verifier) *AuditController {
	return &AuditController{checkout: checkout, verifier: verifier}
}

var auditController *AuditController

// InitializeAuditController wires the audit controller against the live
// database and the Stripe gateway configured via environment.
func InitializeAuditController() {
	factory := repository.NewFactory(database.GetDB())
	audits := factory.GetAuditRequestRepository()
	gateway := payments.NewStripeGatewayFromEnv()

	auditController = NewAuditController(
		payments.NewCheckoutService(audits, gateway, payments.CheckoutConfigFromEnv()),
		payments.NewVerifier(audits, gateway),
	)
}

// GetAuditController returns the initialized audit controller instance
func GetAuditController() *AuditController {
	return auditController
}

// HandleAuditIndex renders the public audit order form
func (ac *AuditController) HandleAuditIndex(c *fiber.Ctx) error {
	return renderPage(c, "audit", "Social Media Audit", fiber.Map{
		"Flash": flash.Get(c),
	})
}

// HandleAuditCheckout initiates an audit checkout. JSON callers get
// {"url": ...} back, form submits are redirected straight to the gateway.
func (ac *AuditController) HandleAuditCheckout(c *fiber.Ctx) error {
	req, isJSON, err := parseCheckoutRequest(c)
	if err != nil {
		return ac.checkoutError(c, isJSON, fiber.StatusBadRequest, "invalid request body")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	result, err := ac.checkout.InitiateAuditCheckout(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidRequest):
			return ac.checkoutError(c, isJSON, fiber.StatusBadRequest, "email and company name are required")
		case errors.Is(err, payments.ErrGateway):
			return ac.checkoutError(c, isJSON, fiber.StatusBadGateway, "payment provider is unavailable, please try again")
		default:
			return ac.checkoutError(c, isJSON, fiber.StatusInternalServerError, "could not create your audit request")
		}
	}

	if isJSON {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"url":      result.URL,
			"audit_id": result.AuditID,
		})
	}
	return c.Redirect(result.URL, fiber.StatusSeeOther)
}

// HandleAuditPaymentSuccess is the landing page after a completed gateway
// checkout. Direct access without an audit_id is bounced to the home page.
func (ac *AuditController) HandleAuditPaymentSuccess(c *fiber.Ctx) error {
	auditID := strings.TrimSpace(c.Query("audit_id"))
	if auditID == "" {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	sessionID := strings.TrimSpace(c.Query("session_id"))

	conf, err := ac.verifier.ConfirmPayment(c.Context(), auditID, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Redirect("/", fiber.StatusSeeOther)
		}
		return renderPage(c, "payment_success", "Payment", fiber.Map{
			"Pending": true,
		})
	}

	return renderPage(c, "payment_success", "Payment", fiber.Map{
		"Pending":   conf.Pending,
		"AuditID":   auditID,
		"SessionID": sessionID,
	})
}

// HandleAuditPaymentCancelled renders the landing page for aborted checkouts
func (ac *AuditController) HandleAuditPaymentCancelled(c *fiber.Ctx) error {
	return renderPage(c, "payment_cancelled", "Payment cancelled", fiber.Map{
		"AuditID": c.Query("audit_id"),
	})
}

func (ac *AuditController) checkoutError(c *fiber.Ctx, isJSON bool, status int, message string) error {
	if isJSON {
		return c.Status(status).JSON(fiber.Map{"error": message})
	}
	fm := fiber.Map{"type": "error", "message": message}
	return flash.WithError(c, fm).Redirect("/audit")
}

func parseCheckoutRequest(c *fiber.Ctx) (payments.CheckoutRequest, bool, error) {
	var req payments.CheckoutRequest

	if strings.Contains(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return req, true, err
		}
		return req, true, nil
	}

	req.Email = strings.TrimSpace(c.FormValue("email"))
	req.CompanyName = strings.TrimSpace(c.FormValue("company_name"))
	req.SocialHandles = map[string]string{}
	for _, platform := range []string{"instagram", "tiktok", "twitter", "linkedin"} {
		if v := strings.TrimSpace(c.FormValue(platform)); v != "" {
			req.SocialHandles[platform] = v
		}
	}
	return req, false, nil
}

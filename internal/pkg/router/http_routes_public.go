package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexthub-ai/flowwing-cms-sub001/app/controllers"
	"github.com/nexthub-ai/flowwing-cms-sub001/internal/pkg/middleware"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Marketing pages
	app.Get("/about", loggedInMiddleware, controllers.HandleAbout)
	app.Get("/pricing", loggedInMiddleware, controllers.HandlePricing)

	// CMS-managed page display
	app.Get("/page/:slug", loggedInMiddleware, controllers.HandlePageBySlug)

	// Audit payment landing pages. The gateway redirects the buyer here,
	// there is no session to protect.
	app.Get("/audit/payment/success", loggedInMiddleware, controllers.GetAuditController().HandleAuditPaymentSuccess)
	app.Get("/audit/payment/cancelled", loggedInMiddleware, controllers.GetAuditController().HandleAuditPaymentCancelled)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Payment provider webhooks (no CSRF, signature-verified in controller)
	app.Post("/webhooks/stripe", controllers.GetWebhookController().HandleStripeWebhook)
}

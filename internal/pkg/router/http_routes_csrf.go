package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/nexthub-ai/flowwing-cms-sub001/app/controllers"
	"github.com/nexthub-ai/flowwing-cms-sub001/internal/pkg/env"
	"github.com/nexthub-ai/flowwing-cms-sub001/internal/pkg/middleware"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/") || strings.HasPrefix(c.Path(), "/webhooks/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/", loggedInMiddleware, controllers.HandleStart)
	group.Get("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Post("/login", loggedInMiddleware, controllers.HandleAuthLogin)

	// Audit order form and checkout initiation
	group.Get("/audit", loggedInMiddleware, controllers.GetAuditController().HandleAuditIndex)
	group.Post("/audit/checkout", loggedInMiddleware, controllers.GetAuditController().HandleAuditCheckout)

	// Admin page management
	group.Get("/admin/pages", middleware.RequireAdmin, controllers.GetAdminPageController().HandleAdminPages)
	group.Get("/admin/pages/create", middleware.RequireAdmin, controllers.GetAdminPageController().HandleAdminPageCreate)
	group.Post("/admin/pages/store", middleware.RequireAdmin, controllers.GetAdminPageController().HandleAdminPageStore)
	group.Get("/admin/pages/edit/:id", middleware.RequireAdmin, controllers.GetAdminPageController().HandleAdminPageEdit)
	group.Post("/admin/pages/update/:id", middleware.RequireAdmin, controllers.GetAdminPageController().HandleAdminPageUpdate)
	group.Post("/admin/pages/delete/:id", middleware.RequireAdmin, controllers.GetAdminPageController().HandleAdminPageDelete)
}

package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexthub-ai/flowwing-cms-sub001/app/controllers"
	"github.com/nexthub-ai/flowwing-cms-sub001/internal/pkg/middleware"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.RequireAdmin)
	adminGroup.Get("/", controllers.GetAdminController().HandleDashboard)

	// Audit request pipeline
	adminGroup.Get("/audits", controllers.GetAdminAuditController().HandleAdminAudits)
	adminGroup.Get("/audits/:id", controllers.GetAdminAuditController().HandleAdminAuditDetail)
	adminGroup.Post("/audits/:id/advance", controllers.GetAdminAuditController().HandleAdminAuditAdvance)

	// Client management
	adminGroup.Get("/clients", controllers.GetAdminClientController().HandleAdminClients)
	adminGroup.Get("/clients/create", controllers.GetAdminClientController().HandleAdminClientCreate)
	adminGroup.Post("/clients/store", controllers.GetAdminClientController().HandleAdminClientStore)
	adminGroup.Get("/clients/edit/:id", controllers.GetAdminClientController().HandleAdminClientEdit)
	adminGroup.Post("/clients/update/:id", controllers.GetAdminClientController().HandleAdminClientUpdate)
	adminGroup.Post("/clients/delete/:id", controllers.GetAdminClientController().HandleAdminClientDelete)

	// Content management
	adminGroup.Get("/content", controllers.GetAdminContentController().HandleAdminContent)
	adminGroup.Get("/content/create", controllers.GetAdminContentController().HandleAdminContentCreate)
	adminGroup.Post("/content/store", controllers.GetAdminContentController().HandleAdminContentStore)
	adminGroup.Get("/content/edit/:id", controllers.GetAdminContentController().HandleAdminContentEdit)
	adminGroup.Post("/content/update/:id", controllers.GetAdminContentController().HandleAdminContentUpdate)
	adminGroup.Post("/content/delete/:id", controllers.GetAdminContentController().HandleAdminContentDelete)
}

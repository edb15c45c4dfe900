package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexthub-ai/flowwing-cms-sub001/app/controllers"
	"github.com/nexthub-ai/flowwing-cms-sub001/app/repository"
	"github.com/nexthub-ai/flowwing-cms-sub001/internal/pkg/database"
	"github.com/nexthub-ai/flowwing-cms-sub001/internal/pkg/middleware"
	"github.com/nexthub-ai/flowwing-cms-sub001/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init repository factory
	repository.InitializeFactory(database.GetDB())

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Initialize controllers with their repositories and gateways
	controllers.InitializeAuditController()
	controllers.InitializeWebhookController()
	controllers.InitializeAdminController()
	controllers.InitializeAdminAuditController()
	controllers.InitializeAdminClientController()
	controllers.InitializeAdminContentController()
	controllers.InitializeAdminPageController()

	h.registerPublicRoutes(app)
	h.registerAdminRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func loggedInMiddleware(c *fiber.Ctx) error {
	// UserContextMiddleware already set all user context
	return c.Next()
}

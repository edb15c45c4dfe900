package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/nexthub-ai/flowwing-cms-sub001/app/models"
	"github.com/nexthub-ai/flowwing-cms-sub001/app/repository"
)

// AdminController handles admin-related HTTP requests using repository pattern
type AdminController struct {
	repos *repository.Repositories
}

// NewAdminController creates a new admin controller with repository dependencies
func NewAdminController(repos *repository.Repositories) *AdminController {
	return &AdminController{
		repos: repos,
	}
}

// handleError is a helper method for consistent error handling
func (ac *AdminController) handleError(c *fiber.Ctx, message string, err error) error {
	log.Printf("[Admin] %s: %v", message, err)
	fm := fiber.Map{
		"type":    "error",
		"message": message,
	}
	return flash.WithError(c, fm).Redirect("/admin")
}

// HandleDashboard renders the admin dashboard with workload counters
func (ac *AdminController) HandleDashboard(c *fiber.Ctx) error {
	totalAudits, err := ac.repos.AuditRequest.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get audit count", err)
	}

	paidAudits, err := ac.repos.AuditRequest.CountByStatus(models.AuditStatusPaymentReceived)
	if err != nil {
		return ac.handleError(c, "Failed to get paid audit count", err)
	}

	pendingAudits, err := ac.repos.AuditRequest.CountByStatus(models.AuditStatusPending)
	if err != nil {
		return ac.handleError(c, "Failed to get pending audit count", err)
	}

	inProgressAudits, err := ac.repos.AuditRequest.CountByStatus(models.AuditStatusInProgress)
	if err != nil {
		return ac.handleError(c, "Failed to get in-progress audit count", err)
	}

	totalClients, err := ac.repos.Client.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get client count", err)
	}

	totalPosts, err := ac.repos.ContentPost.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get content post count", err)
	}

	// Newest requests first so fresh purchases surface on the dashboard
	recentAudits, err := ac.repos.AuditRequest.List(0, 5)
	if err != nil {
		return ac.handleError(c, "Failed to get recent audit requests", err)
	}

	return renderPage(c, "admin/dashboard", "Admin Dashboard", fiber.Map{
		"Flash":            flash.Get(c),
		"TotalAudits":      totalAudits,
		"PaidAudits":       paidAudits,
		"PendingAudits":    pendingAudits,
		"InProgressAudits": inProgressAudits,
		"TotalClients":     totalClients,
		"TotalPosts":       totalPosts,
		"RecentAudits":     recentAudits,
	})
}

// ============================================================================
// GLOBAL ADMIN CONTROLLER INSTANCE - Singleton Pattern
// ============================================================================

var adminController *AdminController

// InitializeAdminController initializes the global admin controller
func InitializeAdminController() {
	adminController = NewAdminController(repository.GetGlobalRepositories())
}

// GetAdminController returns the global admin controller instance
func GetAdminController() *AdminController {
	if adminController == nil {
		InitializeAdminController()
	}
	return adminController
}

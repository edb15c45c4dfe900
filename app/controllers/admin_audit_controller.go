package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/nexthub-ai/flowwing-cms-sub001/app/models"
	"github.com/nexthub-ai/flowwing-cms-sub001/app/repository"
)

// AdminAuditController manages purchased audit requests through the
// fulfilment pipeline.
type AdminAuditController struct {
	auditRepo repository.AuditRequestRepository
}

// NewAdminAuditController creates a new admin audit controller with repository
func NewAdminAuditController(auditRepo repository.AuditRequestRepository) *AdminAuditController {
	return &AdminAuditController{
		auditRepo: auditRepo,
	}
}

// HandleAdminAudits renders the audit request overview with pagination
func (aac *AdminAuditController) HandleAdminAudits(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage := 20
	offset := (page - 1) * perPage

	total, err := aac.auditRepo.Count()
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Failed to load audit requests",
		}
		return flash.WithError(c, fm).Redirect("/admin")
	}

	audits, err := aac.auditRepo.List(offset, perPage)
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Failed to load audit requests",
		}
		return flash.WithError(c, fm).Redirect("/admin")
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}

	return renderPage(c, "admin/audits", "Audit Requests", fiber.Map{
		"Flash":      flash.Get(c),
		"Audits":     audits,
		"Total":      total,
		"Page":       page,
		"TotalPages": totalPages,
		"PrevPage":   page - 1,
		"NextPage":   page + 1,
	})
}

// HandleAdminAuditDetail renders a single audit request
func (aac *AdminAuditController) HandleAdminAuditDetail(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Redirect("/admin/audits")
	}

	audit, err := aac.auditRepo.GetByID(id)
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Audit request not found",
		}
		return flash.WithError(c, fm).Redirect("/admin/audits")
	}

	return renderPage(c, "admin/audit_detail", "Audit Request", fiber.Map{
		"Flash":      flash.Get(c),
		"Audit":      audit,
		"NextStatus": models.NextAuditStatus(audit.Status),
	})
}

// HandleAdminAuditAdvance moves an audit request to the next pipeline stage.
// The transition is a conditional write keyed on the status the staff member
// saw, so two concurrent advances cannot double-step the record.
func (aac *AdminAuditController) HandleAdminAuditAdvance(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.SendStatus(fiber.StatusMethodNotAllowed)
	}

	id := c.Params("id")
	if id == "" {
		return c.Redirect("/admin/audits")
	}

	audit, err := aac.auditRepo.GetByID(id)
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Audit request not found",
		}
		return flash.WithError(c, fm).Redirect("/admin/audits")
	}

	next := models.NextAuditStatus(audit.Status)
	if next == "" {
		fm := fiber.Map{
			"type":    "error",
			"message": "This audit request cannot be advanced from its current status",
		}
		return flash.WithError(c, fm).Redirect("/admin/audits/" + id)
	}

	applied, err := aac.auditRepo.AdvanceStatus(id, audit.Status, next)
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Failed to update audit status",
		}
		return flash.WithError(c, fm).Redirect("/admin/audits/" + id)
	}
	if !applied {
		fm := fiber.Map{
			"type":    "error",
			"message": "Audit status changed in the meantime, please review",
		}
		return flash.WithError(c, fm).Redirect("/admin/audits/" + id)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Audit moved to " + next,
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/audits/" + id)
}

// ============================================================================
// GLOBAL ADMIN AUDIT CONTROLLER INSTANCE - Singleton Pattern
// ============================================================================

var adminAuditController *AdminAuditController

// InitializeAdminAuditController initializes the global admin audit controller
func InitializeAdminAuditController() {
	auditRepo := repository.GetGlobalFactory().GetAuditRequestRepository()
	adminAuditController = NewAdminAuditController(auditRepo)
}

// GetAdminAuditController returns the global admin audit controller instance
func GetAdminAuditController() *AdminAuditController {
	if adminAuditController == nil {
		InitializeAdminAuditController()
	}
	return adminAuditController
}

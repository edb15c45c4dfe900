package apiv1

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/nexthub-ai/flowwing-cms-sub001/app/controllers"
	"github.com/nexthub-ai/flowwing-cms-sub001/app/repository"
)

// APIServer implements the ServerInterface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// PostAuditCheckout initiates an audit checkout from a JSON payload.
// Delegates to the existing controller for consistent response shape.
func (s *APIServer) PostAuditCheckout(c *fiber.Ctx) error {
	return controllers.GetAuditController().HandleAuditCheckout(c)
}

// GetAuditStatus returns the lifecycle status for an audit request (JSON).
// Exposed so buyers can poll payment progress without reloading the
// success page.
func (s *APIServer) GetAuditStatus(c *fiber.Ctx, id string) error {
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "id missing"})
	}

	auditRepo := repository.GetGlobalFactory().GetAuditRequestRepository()
	audit, err := auditRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}

	return c.JSON(AuditStatus{
		ID:     audit.ID,
		Status: audit.Status,
		Paid:   audit.IsPaid(),
	})
}

package apiv1

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterHandlers attaches all v1 endpoints to the given router group
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)
	router.Post("/audit/checkout", s.PostAuditCheckout)
	router.Get("/audit/:id/status", func(c *fiber.Ctx) error {
		return s.GetAuditStatus(c, c.Params("id"))
	})
}

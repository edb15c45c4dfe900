package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/nexthub-ai/flowwing-cms-sub001/app/models"
	"github.com/nexthub-ai/flowwing-cms-sub001/app/repository"
)

// AdminClientController handles agency client management in the CMS
type AdminClientController struct {
	clientRepo repository.ClientRepository
}

// NewAdminClientController creates a new admin client controller with repository
func NewAdminClientController(clientRepo repository.ClientRepository) *AdminClientController {
	return &AdminClientController{
		clientRepo: clientRepo,
	}
}

// HandleAdminClients renders the client overview
func (acc *AdminClientController) HandleAdminClients(c *fiber.Ctx) error {
	clients, err := acc.clientRepo.GetAll()
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Failed to load clients",
		}
		return flash.WithError(c, fm).Redirect("/admin")
	}

	return renderPage(c, "admin/clients", "Clients", fiber.Map{
		"Flash":   flash.Get(c),
		"Clients": clients,
	})
}

// HandleAdminClientCreate renders the client creation form
func (acc *AdminClientController) HandleAdminClientCreate(c *fiber.Ctx) error {
	return renderPage(c, "admin/client_edit", "New client", fiber.Map{
		"Flash":  flash.Get(c),
		"Client": models.Client{Active: true},
		"IsEdit": false,
	})
}

// HandleAdminClientStore handles client creation
func (acc *AdminClientController) HandleAdminClientStore(c *fiber.Ctx) error {
	client := &models.Client{
		Name:          c.FormValue("name"),
		ContactEmail:  c.FormValue("contact_email"),
		SocialHandles: c.FormValue("social_handles"),
		Notes:         c.FormValue("notes"),
		Active:        c.FormValue("active") == "on",
	}

	if err := client.Validate(); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Name and a valid contact email are required",
		}
		return flash.WithError(c, fm).Redirect("/admin/clients/create")
	}

	if err := acc.clientRepo.Create(client); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Failed to create client: " + err.Error(),
		}
		return flash.WithError(c, fm).Redirect("/admin/clients/create")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Client created",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/clients")
}

// HandleAdminClientEdit renders the client edit form
func (acc *AdminClientController) HandleAdminClientEdit(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Redirect("/admin/clients")
	}

	client, err := acc.clientRepo.GetByID(uint(id))
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Client not found",
		}
		return flash.WithError(c, fm).Redirect("/admin/clients")
	}

	return renderPage(c, "admin/client_edit", "Edit client", fiber.Map{
		"Flash":  flash.Get(c),
		"Client": client,
		"IsEdit": true,
	})
}

// HandleAdminClientUpdate handles client updates
func (acc *AdminClientController) HandleAdminClientUpdate(c *fiber.Ctx) error {
	clientID := c.Params("id")
	id, err := strconv.ParseUint(clientID, 10, 32)
	if err != nil {
		return c.Redirect("/admin/clients")
	}

	client, err := acc.clientRepo.GetByID(uint(id))
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Client not found",
		}
		return flash.WithError(c, fm).Redirect("/admin/clients")
	}

	client.Name = c.FormValue("name")
	client.ContactEmail = c.FormValue("contact_email")
	client.SocialHandles = c.FormValue("social_handles")
	client.Notes = c.FormValue("notes")
	client.Active = c.FormValue("active") == "on"
	client.UpdatedAt = time.Now()

	if err := client.Validate(); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Name and a valid contact email are required",
		}
		return flash.WithError(c, fm).Redirect("/admin/clients/edit/" + clientID)
	}

	if err := acc.clientRepo.Update(client); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Failed to update client: " + err.Error(),
		}
		return flash.WithError(c, fm).Redirect("/admin/clients/edit/" + clientID)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Client updated",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/clients")
}

// HandleAdminClientDelete handles client deletion
func (acc *AdminClientController) HandleAdminClientDelete(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.SendStatus(fiber.StatusMethodNotAllowed)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Redirect("/admin/clients")
	}

	if _, err := acc.clientRepo.GetByID(uint(id)); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Client not found",
		}
		return flash.WithError(c, fm).Redirect("/admin/clients")
	}

	if err := acc.clientRepo.Delete(uint(id)); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Failed to delete client: " + err.Error(),
		}
		return flash.WithError(c, fm).Redirect("/admin/clients")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Client deleted",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/clients")
}

// ============================================================================
// GLOBAL ADMIN CLIENT CONTROLLER INSTANCE - Singleton Pattern
// ============================================================================

var adminClientController *AdminClientController

// InitializeAdminClientController initializes the global admin client controller
func InitializeAdminClientController() {
	clientRepo := repository.GetGlobalFactory().GetClientRepository()
	adminClientController = NewAdminClientController(clientRepo)
}

// GetAdminClientController returns the global admin client controller instance
func GetAdminClientController() *AdminClientController {
	if adminClientController == nil {
		InitializeAdminClientController()
	}
	return adminClientController
}

package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/nexthub-ai/flowwing-cms-sub001/app/models"
	"github.com/nexthub-ai/flowwing-cms-sub001/app/repository"
	"github.com/nexthub-ai/flowwing-cms-sub001/internal/pkg/usercontext"
)

// AdminContentController manages social media posts for clients in the CMS
type AdminContentController struct {
	postRepo   repository.ContentPostRepository
	clientRepo repository.ClientRepository
}

// NewAdminContentController creates a new admin content controller with repositories
func NewAdminContentController(postRepo repository.ContentPostRepository, clientRepo repository.ClientRepository) *AdminContentController {
	return &AdminContentController{
		postRepo:   postRepo,
		clientRepo: clientRepo,
	}
}

// HandleAdminContent renders the content post overview, optionally filtered
// by client
func (acc *AdminContentController) HandleAdminContent(c *fiber.Ctx) error {
	var (
		posts []models.ContentPost
		err   error
	)

	clientFilter, _ := strconv.ParseUint(c.Query("client_id", "0"), 10, 32)
	if clientFilter > 0 {
		posts, err = acc.postRepo.GetByClientID(uint(clientFilter))
	} else {
		posts, err = acc.postRepo.GetAll()
	}
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Failed to load content posts",
		}
		return flash.WithError(c, fm).Redirect("/admin")
	}

	clients, err := acc.clientRepo.GetAll()
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Failed to load clients",
		}
		return flash.WithError(c, fm).Redirect("/admin")
	}

	return renderPage(c, "admin/content", "Content", fiber.Map{
		"Flash":        flash.Get(c),
		"Posts":        posts,
		"Clients":      clients,
		"ClientFilter": clientFilter,
	})
}

// HandleAdminContentCreate renders the post creation form
func (acc *AdminContentController) HandleAdminContentCreate(c *fiber.Ctx) error {
	clients, err := acc.clientRepo.GetAll()
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Failed to load clients",
		}
		return flash.WithError(c, fm).Redirect("/admin/content")
	}

	return renderPage(c, "admin/content_edit", "New post", fiber.Map{
		"Flash":   flash.Get(c),
		"Post":    models.ContentPost{Status: models.ContentStatusDraft},
		"Clients": clients,
		"IsEdit":  false,
	})
}

// HandleAdminContentStore handles post creation
func (acc *AdminContentController) HandleAdminContentStore(c *fiber.Ctx) error {
	post, err := acc.postFromForm(c, &models.ContentPost{})
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": err.Error(),
		}
		return flash.WithError(c, fm).Redirect("/admin/content/create")
	}
	post.UserID = usercontext.GetUserID(c)

	if err := acc.postRepo.Create(post); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Failed to create post: " + err.Error(),
		}
		return flash.WithError(c, fm).Redirect("/admin/content/create")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Post created",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/content")
}

// HandleAdminContentEdit renders the post edit form
func (acc *AdminContentController) HandleAdminContentEdit(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Redirect("/admin/content")
	}

	post, err := acc.postRepo.GetByID(uint(id))
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Post not found",
		}
		return flash.WithError(c, fm).Redirect("/admin/content")
	}

	clients, err := acc.clientRepo.GetAll()
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Failed to load clients",
		}
		return flash.WithError(c, fm).Redirect("/admin/content")
	}

	return renderPage(c, "admin/content_edit", "Edit post", fiber.Map{
		"Flash":   flash.Get(c),
		"Post":    post,
		"Clients": clients,
		"IsEdit":  true,
	})
}

// HandleAdminContentUpdate handles post updates
func (acc *AdminContentController) HandleAdminContentUpdate(c *fiber.Ctx) error {
	postID := c.Params("id")
	id, err := strconv.ParseUint(postID, 10, 32)
	if err != nil {
		return c.Redirect("/admin/content")
	}

	post, err := acc.postRepo.GetByID(uint(id))
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Post not found",
		}
		return flash.WithError(c, fm).Redirect("/admin/content")
	}

	if _, err := acc.postFromForm(c, post); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": err.Error(),
		}
		return flash.WithError(c, fm).Redirect("/admin/content/edit/" + postID)
	}
	post.UpdatedAt = time.Now()

	if err := acc.postRepo.Update(post); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Failed to update post: " + err.Error(),
		}
		return flash.WithError(c, fm).Redirect("/admin/content/edit/" + postID)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Post updated",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/content")
}

// HandleAdminContentDelete handles post deletion
func (acc *AdminContentController) HandleAdminContentDelete(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.SendStatus(fiber.StatusMethodNotAllowed)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Redirect("/admin/content")
	}

	if err := acc.postRepo.Delete(uint(id)); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Failed to delete post: " + err.Error(),
		}
		return flash.WithError(c, fm).Redirect("/admin/content")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Post deleted",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/content")
}

// postFromForm fills a content post from the submitted form. Scheduled posts
// need a parseable schedule timestamp, drafts and published posts ignore it.
func (acc *AdminContentController) postFromForm(c *fiber.Ctx, post *models.ContentPost) (*models.ContentPost, error) {
	post.Title = c.FormValue("title")
	post.Body = c.FormValue("body")
	post.Platform = c.FormValue("platform")
	post.Status = c.FormValue("status", models.ContentStatusDraft)

	clientID, err := strconv.ParseUint(c.FormValue("client_id"), 10, 32)
	if err != nil || clientID == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "A client must be selected")
	}
	post.ClientID = uint(clientID)

	if post.Title == "" || post.Body == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Title and body are required")
	}

	switch post.Status {
	case models.ContentStatusDraft, models.ContentStatusPublished:
		post.ScheduledFor = nil
	case models.ContentStatusScheduled:
		scheduledFor, err := time.Parse("2006-01-02T15:04", c.FormValue("scheduled_for"))
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "A valid schedule date is required")
		}
		post.ScheduledFor = &scheduledFor
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "Unknown post status")
	}

	return post, nil
}

// ============================================================================
// GLOBAL ADMIN CONTENT CONTROLLER INSTANCE - Singleton Pattern
// ============================================================================

var adminContentController *AdminContentController

// InitializeAdminContentController initializes the global admin content controller
func InitializeAdminContentController() {
	factory := repository.GetGlobalFactory()
	adminContentController = NewAdminContentController(
		factory.GetContentPostRepository(),
		factory.GetClientRepository(),
	)
}

// GetAdminContentController returns the global admin content controller instance
func GetAdminContentController() *AdminContentController {
	if adminContentController == nil {
		InitializeAdminContentController()
	}
	return adminContentController
}

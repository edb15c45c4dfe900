package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/nexthub-ai/flowwing-cms-sub001/app/models"
	"github.com/nexthub-ai/flowwing-cms-sub001/app/repository"
	"github.com/nexthub-ai/flowwing-cms-sub001/internal/pkg/cache"
	"github.com/nexthub-ai/flowwing-cms-sub001/internal/pkg/payments"
)

// HandleStart renders the marketing home page
func HandleStart(c *fiber.Ctx) error {
	return renderPage(c, "home", "Flowwing", fiber.Map{
		"Flash": flash.Get(c),
	})
}

// HandlePricing renders the pricing page with the audit offer
func HandlePricing(c *fiber.Ctx) error {
	return renderPage(c, "pricing", "Pricing", fiber.Map{
		"AuditProduct":    payments.ProductAuditName,
		"AuditPriceCents": payments.DefaultAuditPriceCents,
	})
}

// HandleAbout renders the about page
func HandleAbout(c *fiber.Ctx) error {
	return renderPage(c, "about", "About us", nil)
}

// HandlePageBySlug serves a CMS-managed page. Inactive and unknown slugs
// both return 404 so drafts never leak. Pages are cached in Redis and
// invalidated by the admin page controller on writes.
func HandlePageBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	page, err := loadPageCached(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}
	if !page.IsActive {
		return fiber.ErrNotFound
	}

	return renderPage(c, "page", page.Title, fiber.Map{
		"Page": page,
	})
}

func pageCacheKey(slug string) string {
	return "page:" + slug
}

func loadPageCached(slug string) (*models.Page, error) {
	if raw, err := cache.Get(pageCacheKey(slug)); err == nil && raw != "" {
		var page models.Page
		if err := json.Unmarshal([]byte(raw), &page); err == nil {
			return &page, nil
		}
	}

	pages := repository.GetGlobalFactory().GetPageRepository()
	page, err := pages.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(page); err == nil {
		if err := cache.Set(pageCacheKey(slug), string(raw), 5*time.Minute); err != nil {
			log.Printf("[Pages] caching %s failed: %v", slug, err)
		}
	}
	return page, nil
}

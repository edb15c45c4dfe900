package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexthub-ai/flowwing-cms-sub001/internal/pkg/usercontext"
)

func isLoggedIn(c *fiber.Ctx) bool {
	var fromProtected bool
	if protectedValue := c.Locals(usercontext.KeyFromProtected); protectedValue != nil {
		fromProtected = protectedValue.(bool)
	}

	return fromProtected
}

// ExtractUsername gets the username from Locals (set by middleware)
func ExtractUsername(c *fiber.Ctx) string {
	return usercontext.GetUserContext(c).Username
}

// renderPage wraps c.Render with the bindings every page template expects.
func renderPage(c *fiber.Ctx, template string, title string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Title"] = title
	data["IsLoggedIn"] = isLoggedIn(c)
	data["Username"] = ExtractUsername(c)
	if token, ok := c.Locals("csrf").(string); ok {
		data["CsrfToken"] = token
	}
	return c.Render(template, data, "layouts/main")
}

package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireRole gates a route on an exact role match. An empty role only
// requires an authenticated user. Composed after AuthRequired.
func (handler *Handler) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := currentUser(c)
		if !ok {
			if strings.HasPrefix(c.Path(), "/api/") {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
			}
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		if role != "" && user.Role != role {
			if strings.HasPrefix(c.Path(), "/api/") {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
			}
			return c.Status(fiber.StatusForbidden).SendString("Forbidden")
		}
		return c.Next()
	}
}

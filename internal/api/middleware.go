package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hiremote/portal/internal/models"
)

const (
	authCookieName  = "portal_auth"
	flashCookieName = "portal_flash"
	contextUserKey  = "current_user"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

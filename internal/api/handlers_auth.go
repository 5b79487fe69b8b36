package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hiremote/portal/internal/services"
)

type loginInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) Index(c *fiber.Ctx) error {
	if _, err := handler.authenticateRequest(c); err == nil {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func (handler *Handler) ShowLoginPage(c *fiber.Ctx) error {
	return handler.render(c, "login", fiber.Map{})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.respondLoginError(c, "Invalid email or password.", input.Email)
	}

	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return handler.respondLoginError(c, "Invalid email or password.", input.Email)
		}
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}

	if err := handler.setAuthCookie(c, &user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	if acceptsJSON(c) {
		return c.JSON(fiber.Map{"ok": true})
	}
	setFlashCookie(c, FlashPayload{Success: "Welcome back!"})
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func (handler *Handler) respondLoginError(c *fiber.Ctx, message string, email string) error {
	if acceptsJSON(c) {
		return apiError(c, fiber.StatusUnauthorized, message)
	}
	setFlashCookie(c, FlashPayload{Error: message, LoginEmail: email})
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	setFlashCookie(c, FlashPayload{Info: "Signed out successfully."})
	return c.Redirect("/login", fiber.StatusSeeOther)
}

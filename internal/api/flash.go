package api

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// FlashPayload carries one-shot messages between a redirect and the next
// page render, serialized into a short-lived cookie.
type FlashPayload struct {
	Error      string `json:"error,omitempty"`
	Success    string `json:"success,omitempty"`
	Info       string `json:"info,omitempty"`
	LoginEmail string `json:"login_email,omitempty"`
}

func (payload FlashPayload) empty() bool {
	return payload.Error == "" && payload.Success == "" && payload.Info == "" && payload.LoginEmail == ""
}

func setFlashCookie(c *fiber.Ctx, payload FlashPayload) {
	payload.Error = strings.TrimSpace(payload.Error)
	payload.Success = strings.TrimSpace(payload.Success)
	payload.Info = strings.TrimSpace(payload.Info)
	payload.LoginEmail = strings.TrimSpace(strings.ToLower(payload.LoginEmail))

	if payload.empty() {
		clearFlashCookie(c)
		return
	}

	serialized, err := json.Marshal(payload)
	if err != nil {
		return
	}

	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(serialized),
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(5 * time.Minute),
	})
}

func popFlashCookie(c *fiber.Ctx) FlashPayload {
	raw := strings.TrimSpace(c.Cookies(flashCookieName))
	if raw == "" {
		return FlashPayload{}
	}
	clearFlashCookie(c)

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return FlashPayload{}
	}
	payload := FlashPayload{}
	if err := json.Unmarshal(decoded, &payload); err != nil {
		return FlashPayload{}
	}
	return payload
}

func clearFlashCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hiremote/portal/internal/assistant"
)

type assistantRequest struct {
	Message string              `json:"message"`
	History []assistant.Message `json:"history"`
}

func (handler *Handler) AskAssistant(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := assistantRequest{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	answer, err := handler.assistant.Answer(c.UserContext(), *user, input.Message, input.History)
	if err != nil {
		switch {
		case errors.Is(err, assistant.ErrEmptyMessage):
			return apiError(c, fiber.StatusBadRequest, "message is required")
		case errors.Is(err, assistant.ErrUnavailable):
			return apiError(c, fiber.StatusBadGateway, "assistant temporarily unavailable")
		default:
			return apiError(c, fiber.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(fiber.Map{
		"reply":      answer.Reply,
		"pos_status": answer.PosStatus,
	})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jaydeadlondon/mini-twitter/internal/service"
)

type FollowHandler struct {
	s service.FollowService
}

func NewFollowHandler(service service.FollowService) *FollowHandler {
	return &FollowHandler{s: service}
}

func (h *FollowHandler) Follow(c *fiber.Ctx) error {
	userID := GetUserID(c)
	username := c.Params("username")

	message, err := h.s.Follow(c.Context(), userID, username)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
	})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jaydeadlondon/mini-twitter/internal/service"
)

type FeedHandler struct {
	s service.FeedService
}

func NewFeedHandler(service service.FeedService) *FeedHandler {
	return &FeedHandler{s: service}
}

func (h *FeedHandler) GetFeed(c *fiber.Ctx) error {
	userID := GetUserID(c)
	limit := c.QueryInt("limit", service.DefaultFeedLimit)

	posts, err := h.s.GetFeed(c.Context(), userID, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *FeedHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	limit := c.QueryInt("limit", service.DefaultFeedLimit)

	posts, err := h.s.SearchPosts(c.Context(), query, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

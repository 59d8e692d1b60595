package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jaydeadlondon/mini-twitter/internal/ratelimit"
	"github.com/jaydeadlondon/mini-twitter/internal/service"
	"github.com/jaydeadlondon/mini-twitter/internal/transfer"
)

type PostHandler struct {
	s       service.PostService
	limiter *ratelimit.Limiter
}

func NewPostHandler(service service.PostService, limiter *ratelimit.Limiter) *PostHandler {
	return &PostHandler{s: service, limiter: limiter}
}

// CreatePost is the only rate-limited write path: the limiter check
// runs before anything touches the transactional store.
func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	userID := GetUserID(c)

	if err := h.limiter.Allow(c.Context(), userID); err != nil {
		return writeError(c, err)
	}

	var pc transfer.PostCreation
	if err := c.BodyParser(&pc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	post, err := h.s.CreatePost(c.Context(), userID, &pc)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) Like(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	message, err := h.s.Like(c.Context(), userID, int64(postID))
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
	})
}

func (h *PostHandler) Unlike(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	message, err := h.s.Unlike(c.Context(), userID, int64(postID))
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
	})
}

func (h *PostHandler) Remove(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	if err := h.s.Remove(c.Context(), userID, int64(postID)); err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post deleted",
	})
}

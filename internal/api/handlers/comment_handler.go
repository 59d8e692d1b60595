package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jaydeadlondon/mini-twitter/internal/service"
	"github.com/jaydeadlondon/mini-twitter/internal/transfer"
)

type CommentHandler struct {
	s service.PostService
}

func NewCommentHandler(service service.PostService) *CommentHandler {
	return &CommentHandler{s: service}
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	var cc transfer.CommentCreation
	if err := c.BodyParser(&cc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	comment, err := h.s.CreateComment(c.Context(), userID, int64(postID), &cc)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(comment)
}

func (h *CommentHandler) List(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	comments, err := h.s.ListComments(c.Context(), int64(postID))
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(comments)
}

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jaydeadlondon/mini-twitter/internal/apperrors"
)

func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := strconv.Atoi(c.Locals("user_id").(string))
	return int64(userID)
}

func writeError(c *fiber.Ctx, err error) error {
	return c.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

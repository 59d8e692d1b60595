package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jaydeadlondon/mini-twitter/internal/service"
	"github.com/jaydeadlondon/mini-twitter/internal/transfer"
	"github.com/jaydeadlondon/mini-twitter/pkg/utils"
)

type AuthHandler struct {
	s         service.AuthService
	secretKey string
}

func NewAuthHandler(secretKey string, service service.AuthService) *AuthHandler {
	return &AuthHandler{s: service, secretKey: secretKey}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var reg transfer.UserRegistration
	if err := c.BodyParser(&reg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	user, err := h.s.Register(c.Context(), &reg)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var login transfer.UserLogin
	if err := c.BodyParser(&login); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	user, err := h.s.Login(c.Context(), &login)
	if err != nil {
		return writeError(c, err)
	}

	token, err := utils.GenerateToken(h.secretKey, fmt.Sprintf("%d", user.ID), 24*time.Hour)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	return c.Status(fiber.StatusOK).JSON(transfer.Token{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

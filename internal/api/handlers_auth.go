package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunacy/internal/services"
)

type registerInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

func (handler *Handler) SetupStatus(c *fiber.Ctx) error {
	setUp, err := handler.authService.IsSetUp()
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"setup_complete": setUp})
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	user, err := handler.authService.Register(input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadySetUp):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "already set up"})
		case errors.Is(err, services.ErrEmailRequired), errors.Is(err, services.ErrPasswordTooShort):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return fiber.ErrInternalServerError
		}
	}

	if err := handler.setAuthCookie(c, &user, false); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"email": user.Email})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	user, err := handler.authService.Login(input.Email, input.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	if err := handler.setAuthCookie(c, &user, input.RememberMe); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"email": user.Email})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"logged_out": true})
}

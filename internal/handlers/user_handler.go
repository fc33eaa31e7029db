package handlers

import (
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

var errInvalidBody = apperr.Validation("Invalid request body")

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Signup handles POST /users.
func (h *UserHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	resp, err := h.userService.Signup(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Login handles POST /login.
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	resp, err := h.userService.Login(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Profile handles GET /users/:userId.
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.userService.Profile(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

package handler

import (
	"github.com/andressep95/blog-service/internal/service"
	"github.com/andressep95/blog-service/pkg/validator"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService *service.UserService
	validator   *validator.Validator
}

func NewUserHandler(userService *service.UserService, validator *validator.Validator) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
	}
}

// List returns a page of users
// GET /users
func (h *UserHandler) List(c *fiber.Ctx) error {
	page, err := h.userService.List(c.Context(), parseQuery(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(page)
}

// Create adds a user on behalf of an administrator
// POST /users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := bind(c, h.validator, &req); err != nil {
		return err
	}

	user, err := h.userService.CreateUser(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(user.View())
}

// Delete removes a user
// DELETE /users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

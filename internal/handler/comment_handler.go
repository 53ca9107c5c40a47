package handler

import (
	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/internal/service"
	"github.com/andressep95/blog-service/pkg/validator"
	"github.com/gofiber/fiber/v2"
)

type CommentHandler struct {
	commentService *service.CommentService
	validator      *validator.Validator
}

func NewCommentHandler(commentService *service.CommentService, validator *validator.Validator) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validator:      validator,
	}
}

// Get GET /comments/:id
func (h *CommentHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	comment, err := h.commentService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(comment)
}

// Update lets the author edit their comment
// PUT /comments/:id
func (h *CommentHandler) Update(c *fiber.Ctx, user *domain.User) error {
	if user == nil {
		return domain.ErrUnauthorized
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var in domain.CommentInput
	if err := bind(c, h.validator, &in); err != nil {
		return err
	}

	if err := h.commentService.Update(c.Context(), id, user.ID, in.Content); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Delete lets the author remove their comment
// DELETE /comments/:id
func (h *CommentHandler) Delete(c *fiber.Ctx, user *domain.User) error {
	if user == nil {
		return domain.ErrUnauthorized
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.commentService.Delete(c.Context(), id, user.ID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

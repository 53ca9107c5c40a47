package handler

import (
	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/internal/service"
	"github.com/andressep95/blog-service/pkg/validator"
	"github.com/gofiber/fiber/v2"
)

type PostHandler struct {
	postService    *service.PostService
	commentService *service.CommentService
	validator      *validator.Validator
}

func NewPostHandler(postService *service.PostService, commentService *service.CommentService, validator *validator.Validator) *PostHandler {
	return &PostHandler{
		postService:    postService,
		commentService: commentService,
		validator:      validator,
	}
}

// List GET /posts
func (h *PostHandler) List(c *fiber.Ctx) error {
	page, err := h.postService.List(c.Context(), parseQuery(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(page)
}

// Get GET /posts/:id
func (h *PostHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

// Create POST /posts
func (h *PostHandler) Create(c *fiber.Ctx) error {
	var in domain.CreatePostInput
	if err := bind(c, h.validator, &in); err != nil {
		return err
	}

	post, err := h.postService.Create(c.Context(), in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// Update PUT /posts/:id
func (h *PostHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var in domain.CreatePostInput
	if err := bind(c, h.validator, &in); err != nil {
		return err
	}

	if err := h.postService.Update(c.Context(), id, in); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Delete DELETE /posts/:id
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.postService.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListComments returns a page of the post's comments
// GET /posts/:postId/comments
func (h *PostHandler) ListComments(c *fiber.Ctx) error {
	postID, err := parseID(c, "postId")
	if err != nil {
		return err
	}

	page, err := h.commentService.ListByPost(c.Context(), postID, parseQuery(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(page)
}

// CreateComment adds a comment written by the authenticated user
// POST /posts/:postId/comments
func (h *PostHandler) CreateComment(c *fiber.Ctx, user *domain.User) error {
	if user == nil {
		return domain.ErrUnauthorized
	}

	postID, err := parseID(c, "postId")
	if err != nil {
		return err
	}

	var in domain.CommentInput
	if err := bind(c, h.validator, &in); err != nil {
		return err
	}

	comment, err := h.commentService.Create(c.Context(), postID, user, in.Content)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

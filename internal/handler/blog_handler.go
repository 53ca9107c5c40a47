package handler

import (
	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/internal/service"
	"github.com/andressep95/blog-service/pkg/validator"
	"github.com/gofiber/fiber/v2"
)

type BlogHandler struct {
	blogService *service.BlogService
	validator   *validator.Validator
}

func NewBlogHandler(blogService *service.BlogService, validator *validator.Validator) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
		validator:   validator,
	}
}

// List returns a page of blogs
// GET /blogs
func (h *BlogHandler) List(c *fiber.Ctx) error {
	page, err := h.blogService.List(c.Context(), parseQuery(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(page)
}

// Get returns one blog
// GET /blogs/:id
func (h *BlogHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	blog, err := h.blogService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(blog)
}

// Create POST /blogs
func (h *BlogHandler) Create(c *fiber.Ctx) error {
	var in domain.BlogInput
	if err := bind(c, h.validator, &in); err != nil {
		return err
	}

	blog, err := h.blogService.Create(c.Context(), in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(blog)
}

// Update PUT /blogs/:id
func (h *BlogHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var in domain.BlogInput
	if err := bind(c, h.validator, &in); err != nil {
		return err
	}

	if err := h.blogService.Update(c.Context(), id, in); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Delete DELETE /blogs/:id
func (h *BlogHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.blogService.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListPosts returns a page of the blog's posts
// GET /blogs/:blogId/posts
func (h *BlogHandler) ListPosts(c *fiber.Ctx) error {
	blogID, err := parseID(c, "blogId")
	if err != nil {
		return err
	}

	page, err := h.blogService.ListPosts(c.Context(), blogID, parseQuery(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(page)
}

// CreatePost adds a post to the blog
// POST /blogs/:blogId/posts
func (h *BlogHandler) CreatePost(c *fiber.Ctx) error {
	blogID, err := parseID(c, "blogId")
	if err != nil {
		return err
	}

	var in domain.PostInput
	if err := bind(c, h.validator, &in); err != nil {
		return err
	}

	post, err := h.blogService.CreatePost(c.Context(), blogID, in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

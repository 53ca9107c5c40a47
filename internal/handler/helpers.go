package handler

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/pkg/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type errorsMessages struct {
	ErrorsMessages []validator.FieldError `json:"errorsMessages"`
}

// ErrorHandler turns errors returned by handlers and gates into responses.
// Field-level validation failures carry an errorsMessages body, every other
// error is reported by status alone.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(errorsMessages{ErrorsMessages: verrs})
	}

	var fieldErr *domain.FieldError
	if errors.As(err, &fieldErr) && errors.Is(err, domain.ErrValidation) {
		return c.Status(fiber.StatusBadRequest).JSON(errorsMessages{
			ErrorsMessages: []validator.FieldError{{Message: fieldErr.Message, Field: fieldErr.Field}},
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.SendStatus(fiberErr.Code)
	}

	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		slog.ErrorContext(c.Context(), "request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
	}
	return c.SendStatus(status)
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrAlreadyConfirmed):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// bind parses the JSON body into dst and validates it
func bind(c *fiber.Ctx, v *validator.Validator, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.ErrBadRequest
	}
	return v.Validate(dst)
}

// parseID reads a uuid path parameter. A malformed id cannot name an
// existing resource, so it is reported as not found.
func parseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, domain.ErrNotFound
	}
	return id, nil
}

// parseQuery reads the pagination, sorting and search query parameters
func parseQuery(c *fiber.Ctx) domain.QueryParams {
	q := domain.QueryParams{
		PageNumber:      c.QueryInt("pageNumber", domain.DefaultPageNumber),
		PageSize:        c.QueryInt("pageSize", domain.DefaultPageSize),
		SortBy:          c.Query("sortBy", domain.DefaultSortBy),
		SortDirection:   domain.SortDesc,
		SearchNameTerm:  c.Query("searchNameTerm"),
		SearchLoginTerm: c.Query("searchLoginTerm"),
		SearchEmailTerm: c.Query("searchEmailTerm"),
	}

	if q.PageNumber < 1 {
		q.PageNumber = domain.DefaultPageNumber
	}
	if q.PageNumber > domain.MaxPageNumber {
		q.PageNumber = domain.MaxPageNumber
	}
	if q.PageSize < 1 {
		q.PageSize = domain.DefaultPageSize
	}
	if q.PageSize > domain.MaxPageSize {
		q.PageSize = domain.MaxPageSize
	}
	if strings.EqualFold(c.Query("sortDirection"), string(domain.SortAsc)) {
		q.SortDirection = domain.SortAsc
	}

	return q
}

package middleware

import (
	"context"
	"errors"

	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/internal/service"
	"github.com/andressep95/blog-service/pkg/jwt"
	"github.com/andressep95/blog-service/pkg/validator"
	"github.com/gofiber/fiber/v2"
)

// RefreshTokenCookie carries the refresh token between client and server
const RefreshTokenCookie = "refreshToken"

// UserHandler receives the user resolved by a gate. It may be nil for a
// valid access token whose user has since been deleted.
type UserHandler func(c *fiber.Ctx, user *domain.User) error

// RefreshHandler receives the session resolved from the refresh token cookie
type RefreshHandler func(c *fiber.Ctx, rs *service.RefreshSession) error

type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
	AuthenticateRefresh(ctx context.Context, refreshToken string) (*service.RefreshSession, error)
	ValidateConfirmationCode(ctx context.Context, code string) (*domain.User, error)
}

// AuthGates wraps handlers with the credential checks they need
type AuthGates struct {
	auth      Authenticator
	validator *validator.Validator
}

func NewAuthGates(auth Authenticator, validator *validator.Validator) *AuthGates {
	return &AuthGates{
		auth:      auth,
		validator: validator,
	}
}

// Bearer requires "Authorization: Bearer <access token>"
func (g *AuthGates) Bearer(next UserHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return domain.ErrUnauthorized
		}

		token, ok := jwt.ExtractBearer(authHeader)
		if !ok {
			return domain.ErrUnauthorized
		}

		user, err := g.auth.Authenticate(c.Context(), token)
		if err != nil {
			return err
		}

		return next(c, user)
	}
}

// Refresh requires a live refresh token in the refreshToken cookie
func (g *AuthGates) Refresh(next RefreshHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(RefreshTokenCookie)
		if token == "" {
			return domain.ErrUnauthorized
		}

		rs, err := g.auth.AuthenticateRefresh(c.Context(), token)
		if err != nil {
			return err
		}

		return next(c, rs)
	}
}

// Confirmation validates the "code" body field and resolves its owner.
// Every rejection is reported against the code field.
func (g *AuthGates) Confirmation(next UserHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.ConfirmationRequest
		if err := c.BodyParser(&req); err != nil {
			return domain.ErrInvalidCode
		}
		if err := g.validator.Validate(req); err != nil {
			return err
		}

		user, err := g.auth.ValidateConfirmationCode(c.Context(), req.Code)
		if err != nil {
			return CodeError(err)
		}

		return next(c, user)
	}
}

// CodeError reports an already used confirmation code as a bad code field
func CodeError(err error) error {
	if errors.Is(err, domain.ErrAlreadyConfirmed) {
		return domain.NewFieldError(domain.ErrValidation, "email is already confirmed", "code")
	}
	return err
}

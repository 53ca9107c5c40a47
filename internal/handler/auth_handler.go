package handler

import (
	"time"

	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/internal/handler/middleware"
	"github.com/andressep95/blog-service/internal/service"
	"github.com/andressep95/blog-service/pkg/validator"
	"github.com/gofiber/fiber/v2"
)

const unknownDevice = "unknown device"

type AuthHandler struct {
	authService   *service.AuthService
	validator     *validator.Validator
	secureCookies bool
}

func NewAuthHandler(authService *service.AuthService, validator *validator.Validator, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		validator:     validator,
		secureCookies: secureCookies,
	}
}

// Login handles user login
// POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := bind(c, h.validator, &req); err != nil {
		return err
	}

	deviceName := c.Get(fiber.HeaderUserAgent)
	if deviceName == "" {
		deviceName = unknownDevice
	}

	pair, err := h.authService.Login(c.Context(), req, c.IP(), deviceName)
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, pair)
	return c.Status(fiber.StatusOK).JSON(pair)
}

// RefreshToken rotates the refresh token of the calling device
// POST /auth/refresh-token
func (h *AuthHandler) RefreshToken(c *fiber.Ctx, rs *service.RefreshSession) error {
	pair, err := h.authService.RefreshTokens(c.Context(), rs, c.IP())
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, pair)
	return c.Status(fiber.StatusOK).JSON(pair)
}

// Logout handles user logout
// POST /auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx, rs *service.RefreshSession) error {
	if err := h.authService.Logout(c.Context(), rs); err != nil {
		return err
	}

	c.ClearCookie(middleware.RefreshTokenCookie)
	return c.SendStatus(fiber.StatusNoContent)
}

// Registration handles user registration
// POST /auth/registration
func (h *AuthHandler) Registration(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := bind(c, h.validator, &req); err != nil {
		return err
	}

	if err := h.authService.Register(c.Context(), req); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RegistrationConfirmation confirms the email of the user resolved by the confirmation gate
// POST /auth/registration-confirmation
func (h *AuthHandler) RegistrationConfirmation(c *fiber.Ctx, user *domain.User) error {
	if err := h.authService.ConfirmEmail(c.Context(), user); err != nil {
		return middleware.CodeError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RegistrationEmailResending issues a new confirmation code
// POST /auth/registration-email-resending
func (h *AuthHandler) RegistrationEmailResending(c *fiber.Ctx) error {
	var req service.EmailRequest
	if err := bind(c, h.validator, &req); err != nil {
		return err
	}

	if err := h.authService.ResendConfirmation(c.Context(), req.Email); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// PasswordRecovery mails a recovery code. Unknown emails get the same answer.
// POST /auth/password-recovery
func (h *AuthHandler) PasswordRecovery(c *fiber.Ctx) error {
	var req service.EmailRequest
	if err := bind(c, h.validator, &req); err != nil {
		return err
	}

	if err := h.authService.PasswordRecovery(c.Context(), req.Email); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// NewPassword sets a new password using a recovery code
// POST /auth/new-password
func (h *AuthHandler) NewPassword(c *fiber.Ctx) error {
	var req service.NewPasswordRequest
	if err := bind(c, h.validator, &req); err != nil {
		return err
	}

	if err := h.authService.NewPassword(c.Context(), req); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Me returns the current user's profile
// GET /auth/me
func (h *AuthHandler) Me(c *fiber.Ctx, user *domain.User) error {
	if user == nil {
		return domain.ErrUnauthorized
	}

	return c.Status(fiber.StatusOK).JSON(h.authService.Me(user))
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, pair *domain.TokenPair) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Expires:  pair.RefreshExpiresAt,
		MaxAge:   int(time.Until(pair.RefreshExpiresAt).Seconds()),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

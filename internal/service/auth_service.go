package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/internal/repository"
	"github.com/andressep95/blog-service/pkg/blacklist"
	"github.com/andressep95/blog-service/pkg/hash"
	"github.com/andressep95/blog-service/pkg/jwt"
	"github.com/google/uuid"
)

// RefreshTokenBlacklist remembers refresh tokens that were already spent.
// Revoke must fail with blacklist.ErrAlreadyRevoked for a token spent before.
type RefreshTokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	Release(ctx context.Context, tokenID string) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Clear(ctx context.Context) error
}

type AuthService struct {
	userRepo                  repository.UserRepository
	userService               *UserService
	sessionService            *DeviceSessionService
	emailManager              *EmailManager
	tokenService              *jwt.TokenService
	tokenBlacklist            RefreshTokenBlacklist
	hasher                    *hash.Hasher
	enforceConfirmationExpiry bool
	now                       func() time.Time
}

type LoginRequest struct {
	LoginOrEmail string `json:"loginOrEmail" validate:"required,notblank"`
	Password     string `json:"password" validate:"required,notblank"`
}

type ConfirmationRequest struct {
	Code string `json:"code" validate:"required,notblank"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type NewPasswordRequest struct {
	NewPassword  string `json:"newPassword" validate:"required,min=6,max=20"`
	RecoveryCode string `json:"recoveryCode" validate:"required,notblank"`
}

// MeView is the caller's own profile
type MeView struct {
	Email  string    `json:"email"`
	Login  string    `json:"login"`
	UserID uuid.UUID `json:"userId"`
}

// RefreshSession is everything resolved from a valid refresh token
type RefreshSession struct {
	User    *domain.User
	Session *domain.DeviceSession
	Claims  *domain.Claims
}

func NewAuthService(
	userRepo repository.UserRepository,
	userService *UserService,
	sessionService *DeviceSessionService,
	emailManager *EmailManager,
	tokenService *jwt.TokenService,
	tokenBlacklist RefreshTokenBlacklist,
	hasher *hash.Hasher,
	enforceConfirmationExpiry bool,
) *AuthService {
	return &AuthService{
		userRepo:                  userRepo,
		userService:               userService,
		sessionService:            sessionService,
		emailManager:              emailManager,
		tokenService:              tokenService,
		tokenBlacklist:            tokenBlacklist,
		hasher:                    hasher,
		enforceConfirmationExpiry: enforceConfirmationExpiry,
		now:                       time.Now,
	}
}

// Register creates an unconfirmed user and mails the confirmation link.
// A delivery failure is returned as is; the user stays stored.
func (s *AuthService) Register(ctx context.Context, req CreateUserRequest) error {
	user, err := s.userService.CreateUser(ctx, req)
	if err != nil {
		return err
	}

	return s.emailManager.SendRegistrationEmail(ctx, user)
}

// ValidateConfirmationCode resolves the user owning code and checks the code
// against their pending confirmation. Nothing is persisted.
func (s *AuthService) ValidateConfirmationCode(ctx context.Context, code string) (*domain.User, error) {
	users, err := s.userRepo.FindByConfirmationCode(ctx, code)
	if err != nil {
		return nil, err
	}

	switch len(users) {
	case 0:
		return nil, domain.ErrInvalidCode
	case 1:
	default:
		return nil, fmt.Errorf("confirmation code shared by several users: %w", domain.ErrDataBase)
	}

	user := users[0]
	if err := user.EmailConfirmation.Validate(code, s.now(), s.enforceConfirmationExpiry); err != nil {
		return nil, err
	}

	return user, nil
}

// ConfirmEmail persists the confirmation. Only the first call for a user succeeds.
func (s *AuthService) ConfirmEmail(ctx context.Context, user *domain.User) error {
	if err := s.userRepo.ConfirmEmail(ctx, user.ID); err != nil {
		return err
	}

	user.IsConfirmed = true
	slog.InfoContext(ctx, "email confirmed", "user_id", user.ID)
	return nil
}

// ResendConfirmation issues a new code for an unconfirmed user and mails it
func (s *AuthService) ResendConfirmation(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewFieldError(domain.ErrValidation, "user with this email doesn't exist", "email")
		}
		return err
	}

	if user.IsConfirmed {
		return domain.NewFieldError(domain.ErrValidation, "email is already confirmed", "email")
	}

	user.EmailConfirmation = domain.NewEmailConfirmation(s.now().UTC())
	if err := s.userRepo.UpdateConfirmation(ctx, user.ID, user.EmailConfirmation); err != nil {
		return err
	}

	return s.emailManager.SendRegistrationEmail(ctx, user)
}

// Login checks credentials and opens a new device session
func (s *AuthService) Login(ctx context.Context, req LoginRequest, ip, deviceName string) (*domain.TokenPair, error) {
	user, err := s.userRepo.GetByLoginOrEmail(ctx, req.LoginOrEmail)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	valid, err := s.hasher.Verify(req.Password, user.PasswordSalt, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, domain.ErrUnauthorized
	}

	deviceID := uuid.NewString()
	pair, err := s.tokenService.GenerateTokenPair(user.ID, deviceID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	_, err = s.sessionService.Create(ctx, CreateDeviceSessionRequest{
		UserID:      user.ID,
		IP:          ip,
		DeviceID:    deviceID,
		DeviceName:  deviceName,
		IssuedAt:    pair.RefreshIssuedAt,
		ExpiredDate: pair.RefreshExpiresAt,
	})
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID, "device_id", deviceID, "ip", ip)
	return pair, nil
}

// AuthenticateRefresh validates a refresh token and resolves its live session
func (s *AuthService) AuthenticateRefresh(ctx context.Context, refreshToken string) (*RefreshSession, error) {
	claims, err := s.tokenService.ValidateTokenOfType(refreshToken, domain.TokenTypeRefresh)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	revoked, err := s.tokenBlacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrUnauthorized
	}

	issuedAt := claims.IssuedAt.Time
	session, err := s.sessionService.FindByFilter(ctx, domain.DeviceSessionFilter{
		DeviceID: &claims.DeviceID,
		IssuedAt: &issuedAt,
	})
	if err != nil {
		return nil, err
	}
	if session == nil || session.IsExpired(s.now()) || session.UserID != claims.UserID {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	return &RefreshSession{User: user, Session: session, Claims: claims}, nil
}

// RefreshTokens spends the current refresh token and issues a new pair for the same device.
// Of several concurrent calls for one token only the first succeeds.
func (s *AuthService) RefreshTokens(ctx context.Context, rs *RefreshSession, ip string) (*domain.TokenPair, error) {
	pair, err := s.tokenService.GenerateTokenPair(rs.User.ID, rs.Session.DeviceID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.revoke(ctx, rs.Claims); err != nil {
		return nil, err
	}

	err = s.sessionService.Update(ctx, rs.Session.ID, domain.DeviceSessionUpdate{
		IP:          &ip,
		IssuedAt:    &pair.RefreshIssuedAt,
		ExpiredDate: &pair.RefreshExpiresAt,
	})
	if err == nil {
		err = s.storeRefreshToken(ctx, rs.User.ID, pair.RefreshToken)
	}
	if err != nil {
		s.release(ctx, rs.Claims)
		return nil, err
	}

	return pair, nil
}

// Logout spends the refresh token and closes its device session
func (s *AuthService) Logout(ctx context.Context, rs *RefreshSession) error {
	if err := s.revoke(ctx, rs.Claims); err != nil {
		return err
	}

	err := s.sessionService.DeleteByID(ctx, rs.Session.ID)
	if err == nil {
		err = s.userRepo.SetRefreshToken(ctx, rs.User.ID, nil)
		if errors.Is(err, domain.ErrNotFound) {
			err = nil
		}
	}
	if err != nil {
		s.release(ctx, rs.Claims)
		return err
	}

	slog.InfoContext(ctx, "user logged out", "user_id", rs.User.ID, "device_id", rs.Session.DeviceID)
	return nil
}

// Authenticate validates an access token and loads its user.
// A valid token whose user no longer exists yields a nil user and no error.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.tokenService.ValidateTokenOfType(accessToken, domain.TokenTypeAccess)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

// PasswordRecovery mails a recovery code. Unknown addresses are silently ignored.
func (s *AuthService) PasswordRecovery(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	code := uuid.NewString()
	if err := s.userRepo.SetRecovery(ctx, user.ID, code, s.now().UTC().Add(domain.RecoveryCodeLifetime)); err != nil {
		return err
	}

	return s.emailManager.SendPasswordRecoveryEmail(ctx, user.Email, code)
}

// NewPassword replaces the password of the user holding a valid recovery code
func (s *AuthService) NewPassword(ctx context.Context, req NewPasswordRequest) error {
	invalid := domain.NewFieldError(domain.ErrValidation, "recovery code is incorrect or expired", "recoveryCode")

	user, err := s.userRepo.GetByRecoveryCode(ctx, req.RecoveryCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return invalid
		}
		return err
	}
	if !user.PasswordRecovery.IsValid(req.RecoveryCode, s.now()) {
		return invalid
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	passwordHash, err := s.hasher.Hash(req.NewPassword, salt)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, salt, passwordHash); err != nil {
		return err
	}

	slog.InfoContext(ctx, "password changed", "user_id", user.ID)
	return nil
}

func (s *AuthService) Me(user *domain.User) MeView {
	return MeView{Email: user.Email, Login: user.Login, UserID: user.ID}
}

// revoke claims the refresh token. A token spent by another request is unauthorized.
func (s *AuthService) revoke(ctx context.Context, claims *domain.Claims) error {
	if claims.ExpiresAt == nil {
		return domain.ErrUnauthorized
	}

	err := s.tokenBlacklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
	if errors.Is(err, blacklist.ErrAlreadyRevoked) {
		return domain.ErrUnauthorized
	}
	return err
}

// release gives a claimed token back after the operation spending it failed
func (s *AuthService) release(ctx context.Context, claims *domain.Claims) {
	if err := s.tokenBlacklist.Release(ctx, claims.ID); err != nil {
		slog.ErrorContext(ctx, "failed to release refresh token", "token_id", claims.ID, "error", err)
	}
}

func (s *AuthService) storeRefreshToken(ctx context.Context, userID uuid.UUID, token string) error {
	hashed := hashToken(token)
	return s.userRepo.SetRefreshToken(ctx, userID, &hashed)
}

// hashToken creates a SHA-256 hash of the token
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

package repository

import (
	"context"
	"time"

	"github.com/andressep95/blog-service/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByLoginOrEmail(ctx context.Context, loginOrEmail string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByConfirmationCode returns every user holding code; callers treat more than one as corruption
	FindByConfirmationCode(ctx context.Context, code string) ([]*domain.User, error)
	// ConfirmEmail flips is_confirmed only if it is still false
	ConfirmEmail(ctx context.Context, id uuid.UUID) error
	UpdateConfirmation(ctx context.Context, id uuid.UUID, confirmation domain.EmailConfirmation) error
	SetRecovery(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error
	GetByRecoveryCode(ctx context.Context, code string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, salt, hash string) error
	SetRefreshToken(ctx context.Context, id uuid.UUID, tokenHash *string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q domain.QueryParams) ([]*domain.User, int, error)
	DeleteAll(ctx context.Context) error
}

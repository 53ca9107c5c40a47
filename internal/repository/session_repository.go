package repository

import (
	"context"
	"time"

	"github.com/andressep95/blog-service/internal/domain"
	"github.com/google/uuid"
)

type DeviceSessionRepository interface {
	Create(ctx context.Context, session *domain.DeviceSession) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, upd domain.DeviceSessionUpdate) error
	// FindByFilter returns nil without error when nothing matches
	FindByFilter(ctx context.Context, filter domain.DeviceSessionFilter) (*domain.DeviceSession, error)
	ListByUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.DeviceSession, error)
	DeleteAllExceptCurrent(ctx context.Context, currentID uuid.UUID) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/internal/repository"
	"github.com/google/uuid"
)

// DeviceSessionService manages the per-device login records
type DeviceSessionService struct {
	sessionRepo repository.DeviceSessionRepository
	now         func() time.Time
}

type CreateDeviceSessionRequest struct {
	UserID      uuid.UUID
	IP          string
	DeviceID    string
	DeviceName  string
	IssuedAt    time.Time
	ExpiredDate time.Time
}

func NewDeviceSessionService(sessionRepo repository.DeviceSessionRepository) *DeviceSessionService {
	return &DeviceSessionService{
		sessionRepo: sessionRepo,
		now:         time.Now,
	}
}

// Create validates the lifetime window and stores a new session
func (s *DeviceSessionService) Create(ctx context.Context, req CreateDeviceSessionRequest) (uuid.UUID, error) {
	session, err := domain.NewDeviceSession(req.UserID, req.IP, req.DeviceID, req.DeviceName, req.IssuedAt, req.ExpiredDate)
	if err != nil {
		return uuid.Nil, err
	}

	return s.sessionRepo.Create(ctx, session)
}

func (s *DeviceSessionService) Update(ctx context.Context, id uuid.UUID, upd domain.DeviceSessionUpdate) error {
	return s.sessionRepo.Update(ctx, id, upd)
}

func (s *DeviceSessionService) FindByFilter(ctx context.Context, filter domain.DeviceSessionFilter) (*domain.DeviceSession, error) {
	return s.sessionRepo.FindByFilter(ctx, filter)
}

// ListByUser returns the user's active sessions
func (s *DeviceSessionService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.DeviceSession, error) {
	return s.sessionRepo.ListByUser(ctx, userID, s.now())
}

// DeleteAllExceptCurrent terminates every other session of the current session's owner
func (s *DeviceSessionService) DeleteAllExceptCurrent(ctx context.Context, currentID uuid.UUID) error {
	return s.sessionRepo.DeleteAllExceptCurrent(ctx, currentID)
}

func (s *DeviceSessionService) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return s.sessionRepo.DeleteByID(ctx, id)
}

// DeleteByDeviceID terminates a device session owned by ownerID
func (s *DeviceSessionService) DeleteByDeviceID(ctx context.Context, ownerID uuid.UUID, deviceID string) error {
	session, err := s.sessionRepo.FindByFilter(ctx, domain.DeviceSessionFilter{DeviceID: &deviceID})
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("device %s: %w", deviceID, domain.ErrNotFound)
	}
	if session.UserID != ownerID {
		return fmt.Errorf("device %s: %w", deviceID, domain.ErrForbidden)
	}

	return s.sessionRepo.DeleteByID(ctx, session.ID)
}

func (s *DeviceSessionService) DeleteAll(ctx context.Context) error {
	return s.sessionRepo.DeleteAll(ctx)
}

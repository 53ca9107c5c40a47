package domain

import (
	"time"

	"github.com/google/uuid"
)

// DeviceSession represents one active login on one device
type DeviceSession struct {
	ID          uuid.UUID `json:"-" db:"id"`
	UserID      uuid.UUID `json:"-" db:"user_id"`
	IP          string    `json:"ip" db:"ip"`
	DeviceID    string    `json:"deviceId" db:"device_id"`
	DeviceName  string    `json:"title" db:"device_name"`
	IssuedAt    time.Time `json:"lastActiveDate" db:"issued_at"`
	ExpiredDate time.Time `json:"-" db:"expired_date"`
}

// NewDeviceSession validates the lifetime window and builds a session
func NewDeviceSession(userID uuid.UUID, ip, deviceID, deviceName string, issuedAt, expiredDate time.Time) (*DeviceSession, error) {
	if !expiredDate.After(issuedAt) {
		return nil, NewFieldError(ErrValidation, "expiredDate must be after issuedAt", "expiredDate")
	}

	return &DeviceSession{
		ID:          uuid.New(),
		UserID:      userID,
		IP:          ip,
		DeviceID:    deviceID,
		DeviceName:  deviceName,
		IssuedAt:    issuedAt,
		ExpiredDate: expiredDate,
	}, nil
}

// IsExpired reports whether the session can no longer authenticate
func (s *DeviceSession) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiredDate)
}

// DeviceSessionFilter selects a session by any combination of set fields
type DeviceSessionFilter struct {
	ID       *uuid.UUID
	UserID   *uuid.UUID
	DeviceID *string
	IssuedAt *time.Time
}

// IsEmpty reports whether no field is set
func (f DeviceSessionFilter) IsEmpty() bool {
	return f.ID == nil && f.UserID == nil && f.DeviceID == nil && f.IssuedAt == nil
}

// DeviceSessionUpdate carries the fields to change; nil fields are left untouched
type DeviceSessionUpdate struct {
	IP          *string
	IssuedAt    *time.Time
	ExpiredDate *time.Time
}

// IsEmpty reports whether no field is set
func (u DeviceSessionUpdate) IsEmpty() bool {
	return u.IP == nil && u.IssuedAt == nil && u.ExpiredDate == nil
}

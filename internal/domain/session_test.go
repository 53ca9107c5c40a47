package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeviceSession(t *testing.T) {
	issued := time.Now()

	s, err := NewDeviceSession(uuid.New(), "127.0.0.1", "dev-1", "curl", issued, issued.Add(time.Hour))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.False(t, s.IsExpired(issued))
	assert.True(t, s.IsExpired(issued.Add(time.Hour)))

	_, err = NewDeviceSession(uuid.New(), "127.0.0.1", "dev-1", "curl", issued, issued)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeviceSessionFilter_IsEmpty(t *testing.T) {
	assert.True(t, DeviceSessionFilter{}.IsEmpty())

	deviceID := "dev-1"
	assert.False(t, DeviceSessionFilter{DeviceID: &deviceID}.IsEmpty())
}

package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type TokenPair struct {
	AccessToken      string    `json:"accessToken"`
	RefreshToken     string    `json:"-"`
	AccessExpiresAt  time.Time `json:"-"`
	RefreshIssuedAt  time.Time `json:"-"`
	RefreshExpiresAt time.Time `json:"-"`
}

type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"uid"`
	DeviceID  string    `json:"did,omitempty"` // refresh tokens only
	TokenType string    `json:"type"`
}

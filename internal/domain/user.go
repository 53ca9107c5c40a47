package domain

import (
	"time"

	"github.com/google/uuid"
)

// ConfirmationCodeLifetime is how long a freshly issued confirmation code stays valid
const ConfirmationCodeLifetime = time.Hour

// RecoveryCodeLifetime is how long a password recovery code stays valid
const RecoveryCodeLifetime = time.Hour

// EmailConfirmation tracks the one-time code proving ownership of the user's email
type EmailConfirmation struct {
	ConfirmationCode string    `json:"confirmationCode" db:"confirmation_code"`
	ExpirationDate   time.Time `json:"expirationDate" db:"confirmation_expiration_date"`
	IsConfirmed      bool      `json:"isConfirmed" db:"is_confirmed"`
}

// NewEmailConfirmation issues a fresh, unconfirmed code expiring one hour after now
func NewEmailConfirmation(now time.Time) EmailConfirmation {
	return EmailConfirmation{
		ConfirmationCode: uuid.NewString(),
		ExpirationDate:   now.Add(ConfirmationCodeLifetime),
		IsConfirmed:      false,
	}
}

// IsExpired reports whether the code is past its expiration date
func (e *EmailConfirmation) IsExpired(now time.Time) bool {
	return now.After(e.ExpirationDate)
}

// Validate checks code against the pending confirmation and marks it confirmed.
// A second call after success returns ErrAlreadyConfirmed.
// Expiry is only checked when enforceExpiry is set.
func (e *EmailConfirmation) Validate(code string, now time.Time, enforceExpiry bool) error {
	if e.IsConfirmed {
		return ErrAlreadyConfirmed
	}
	if e.ConfirmationCode != code {
		return ErrInvalidCode
	}
	if enforceExpiry && e.IsExpired(now) {
		return ErrInvalidCode
	}

	e.IsConfirmed = true
	return nil
}

// PasswordRecovery holds a pending password recovery request
type PasswordRecovery struct {
	RecoveryCode   *string    `json:"-" db:"recovery_code"`
	ExpirationDate *time.Time `json:"-" db:"recovery_expiration_date"`
}

// IsValid reports whether code matches the pending recovery and is not expired
func (p *PasswordRecovery) IsValid(code string, now time.Time) bool {
	if p.RecoveryCode == nil || p.ExpirationDate == nil {
		return false
	}
	return *p.RecoveryCode == code && now.Before(*p.ExpirationDate)
}

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Login        string    `json:"login" db:"login"`
	Email        string    `json:"email" db:"email"`
	PasswordSalt string    `json:"-" db:"password_salt"`
	PasswordHash string    `json:"-" db:"password_hash"`
	EmailConfirmation
	PasswordRecovery
	RefreshToken *string   `json:"-" db:"refresh_token"` // SHA-256 of the current refresh token
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// NewUser builds an unconfirmed user with a fresh confirmation code
func NewUser(login, email, salt, hash string, now time.Time) *User {
	return &User{
		ID:                uuid.New(),
		Login:             login,
		Email:             email,
		PasswordSalt:      salt,
		PasswordHash:      hash,
		EmailConfirmation: NewEmailConfirmation(now),
		CreatedAt:         now,
	}
}

// UserView is the public representation of a user
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Login     string    `json:"login"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) View() UserView {
	return UserView{
		ID:        u.ID,
		Login:     u.Login,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

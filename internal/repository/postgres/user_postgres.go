package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const userColumns = `id, login, email, password_salt, password_hash,
		confirmation_code, confirmation_expiration_date, is_confirmed,
		recovery_code, recovery_expiration_date, refresh_token, created_at`

var userSortColumns = map[string]string{
	"createdAt": "created_at",
	"login":     "login",
	"email":     "email",
}

type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (
			:id, :login, :email, :password_salt, :password_hash,
			:confirmation_code, :confirmation_expiration_date, :is_confirmed,
			:recovery_code, :recovery_expiration_date, :refresh_token, :created_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return wrapError("create user", err)
	}

	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, "get user by id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByLoginOrEmail matches the value against both login and email
func (r *userRepository) GetByLoginOrEmail(ctx context.Context, loginOrEmail string) (*domain.User, error) {
	return r.getOne(ctx, "get user by login or email",
		`SELECT `+userColumns+` FROM users WHERE login = $1 OR email = $1 LIMIT 1`, loginOrEmail)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *userRepository) GetByRecoveryCode(ctx context.Context, code string) (*domain.User, error) {
	return r.getOne(ctx, "get user by recovery code",
		`SELECT `+userColumns+` FROM users WHERE recovery_code = $1`, code)
}

func (r *userRepository) getOne(ctx context.Context, op, query string, args ...interface{}) (*domain.User, error) {
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		return nil, wrapError(op, err)
	}
	return &user, nil
}

// FindByConfirmationCode fetches at most two users so callers can detect duplicates
func (r *userRepository) FindByConfirmationCode(ctx context.Context, code string) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE confirmation_code = $1 LIMIT 2`

	var users []*domain.User
	if err := r.db.SelectContext(ctx, &users, query, code); err != nil {
		return nil, wrapError("find user by confirmation code", err)
	}

	return users, nil
}

// ConfirmEmail marks the user confirmed. Zero affected rows means the user is
// either missing or was confirmed by an earlier call.
func (r *userRepository) ConfirmEmail(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_confirmed = TRUE WHERE id = $1 AND is_confirmed = FALSE`, id)
	if err != nil {
		return wrapError("confirm email", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrAlreadyConfirmed
	}

	return nil
}

// UpdateConfirmation replaces the confirmation state, used when a code is reissued
func (r *userRepository) UpdateConfirmation(ctx context.Context, id uuid.UUID, confirmation domain.EmailConfirmation) error {
	query := `
		UPDATE users
		SET confirmation_code = $1,
			confirmation_expiration_date = $2,
			is_confirmed = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		confirmation.ConfirmationCode, confirmation.ExpirationDate, confirmation.IsConfirmed, id)
	if err != nil {
		return wrapError("update confirmation", err)
	}

	return checkAffected("update confirmation", result)
}

// SetRecovery stores a pending password recovery code
func (r *userRepository) SetRecovery(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET recovery_code = $1, recovery_expiration_date = $2 WHERE id = $3`,
		code, expiresAt, id)
	if err != nil {
		return wrapError("set recovery code", err)
	}

	return checkAffected("set recovery code", result)
}

// UpdatePassword stores new credentials and clears any pending recovery
func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, salt, hash string) error {
	query := `
		UPDATE users
		SET password_salt = $1,
			password_hash = $2,
			recovery_code = NULL,
			recovery_expiration_date = NULL
		WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, salt, hash, id)
	if err != nil {
		return wrapError("update password", err)
	}

	return checkAffected("update password", result)
}

func (r *userRepository) SetRefreshToken(ctx context.Context, id uuid.UUID, tokenHash *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET refresh_token = $1 WHERE id = $2`, tokenHash, id)
	if err != nil {
		return wrapError("set refresh token", err)
	}

	return checkAffected("set refresh token", result)
}

// Delete removes a user from the database
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return wrapError("delete user", err)
	}

	return checkAffected("delete user", result)
}

// List retrieves users with pagination. Login and email terms are OR-ed.
func (r *userRepository) List(ctx context.Context, q domain.QueryParams) ([]*domain.User, int, error) {
	var where whereBuilder
	if q.SearchLoginTerm != "" {
		where.add(`login ILIKE $%d ESCAPE '\'`, containsPattern(q.SearchLoginTerm))
	}
	if q.SearchEmailTerm != "" {
		where.add(`email ILIKE $%d ESCAPE '\'`, containsPattern(q.SearchEmailTerm))
	}
	filter := where.clause(" OR ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`+filter, where.args...); err != nil {
		return nil, 0, wrapError("count users", err)
	}

	query, args := where.page(`SELECT `+userColumns+` FROM users`+filter+orderBy(q, userSortColumns), q)

	var users []*domain.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, wrapError("list users", err)
	}

	return users, total, nil
}

func (r *userRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return wrapError("delete all users", err)
	}
	return nil
}

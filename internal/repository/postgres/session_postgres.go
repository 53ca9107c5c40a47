package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const sessionColumns = `id, user_id, ip, device_id, device_name, issued_at, expired_date`

type deviceSessionRepository struct {
	db *sqlx.DB
}

// NewDeviceSessionRepository creates a new PostgreSQL device session repository
func NewDeviceSessionRepository(db *sqlx.DB) repository.DeviceSessionRepository {
	return &deviceSessionRepository{db: db}
}

// Create inserts a new session into the database
func (r *deviceSessionRepository) Create(ctx context.Context, session *domain.DeviceSession) (uuid.UUID, error) {
	query := `
		INSERT INTO device_sessions (` + sessionColumns + `)
		VALUES (:id, :user_id, :ip, :device_id, :device_name, :issued_at, :expired_date)`

	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return uuid.Nil, wrapError("create session", err)
	}

	return session.ID, nil
}

// Update changes only the fields set in upd
func (r *deviceSessionRepository) Update(ctx context.Context, id uuid.UUID, upd domain.DeviceSessionUpdate) error {
	if upd.IsEmpty() {
		return fmt.Errorf("update session: nothing to update: %w", domain.ErrValidation)
	}

	var (
		sets []string
		args []interface{}
	)
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.IP != nil {
		set("ip", *upd.IP)
	}
	if upd.IssuedAt != nil {
		set("issued_at", *upd.IssuedAt)
	}
	if upd.ExpiredDate != nil {
		set("expired_date", *upd.ExpiredDate)
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE device_sessions SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapError("update session", err)
	}

	return checkAffected("update session", result)
}

// FindByFilter returns the first session matching every set field, or nil
func (r *deviceSessionRepository) FindByFilter(ctx context.Context, filter domain.DeviceSessionFilter) (*domain.DeviceSession, error) {
	if filter.IsEmpty() {
		return nil, fmt.Errorf("find session: empty filter: %w", domain.ErrValidation)
	}

	var where whereBuilder
	if filter.ID != nil {
		where.add("id = $%d", *filter.ID)
	}
	if filter.UserID != nil {
		where.add("user_id = $%d", *filter.UserID)
	}
	if filter.DeviceID != nil {
		where.add("device_id = $%d", *filter.DeviceID)
	}
	if filter.IssuedAt != nil {
		where.add("issued_at = $%d", *filter.IssuedAt)
	}

	query := `SELECT ` + sessionColumns + ` FROM device_sessions` + where.clause(" AND ") + ` LIMIT 1`

	var sessions []*domain.DeviceSession
	if err := r.db.SelectContext(ctx, &sessions, query, where.args...); err != nil {
		return nil, wrapError("find session", err)
	}
	if len(sessions) == 0 {
		return nil, nil
	}

	return sessions[0], nil
}

// ListByUser returns the user's sessions that have not expired yet
func (r *deviceSessionRepository) ListByUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.DeviceSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM device_sessions
		WHERE user_id = $1 AND expired_date > $2
		ORDER BY issued_at DESC`

	sessions := []*domain.DeviceSession{}
	if err := r.db.SelectContext(ctx, &sessions, query, userID, now); err != nil {
		return nil, wrapError("list sessions", err)
	}

	return sessions, nil
}

// DeleteAllExceptCurrent removes every other session of the owner of currentID
func (r *deviceSessionRepository) DeleteAllExceptCurrent(ctx context.Context, currentID uuid.UUID) error {
	query := `
		DELETE FROM device_sessions
		WHERE user_id = (SELECT user_id FROM device_sessions WHERE id = $1)
		  AND id <> $1`

	if _, err := r.db.ExecContext(ctx, query, currentID); err != nil {
		return wrapError("delete other sessions", err)
	}

	return nil
}

// DeleteByID removes a single session
func (r *deviceSessionRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM device_sessions WHERE id = $1`, id)
	if err != nil {
		return wrapError("delete session", err)
	}

	return checkAffected("delete session", result)
}

func (r *deviceSessionRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM device_sessions`); err != nil {
		return wrapError("delete all sessions", err)
	}
	return nil
}

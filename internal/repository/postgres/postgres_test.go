package postgres

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/internal/repository/postgres/migrations"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestWrapError(t *testing.T) {
	err := wrapError("get user", sql.ErrNoRows)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = wrapError("create user", &pq.Error{Code: "23505", Constraint: "users_login_key"})
	assert.ErrorIs(t, err, domain.ErrDuplicateLogin)
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = wrapError("create user", &pq.Error{Code: "23505", Constraint: "users_email_key"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	cause := errors.New("connection reset")
	err = wrapError("create user", cause)
	assert.ErrorIs(t, err, domain.ErrDataBase)
	assert.ErrorIs(t, err, cause)
}

func TestSchema_ContentCascades(t *testing.T) {
	schema, err := fs.ReadFile(migrations.Migrations, "00001_init.sql")
	require.NoError(t, err)

	ddl := string(schema)
	assert.Contains(t, ddl, "blog_id           UUID NOT NULL REFERENCES blogs (id) ON DELETE CASCADE")
	assert.Contains(t, ddl, "post_id    UUID NOT NULL REFERENCES posts (id) ON DELETE CASCADE")
}

func TestContainsPattern(t *testing.T) {
	tests := map[string]string{
		"go":      "%go%",
		"a_b":     `%a\_b%`,
		"100%":    `%100\%%`,
		`back\sl`: `%back\\sl%`,
	}
	for term, want := range tests {
		assert.Equal(t, want, containsPattern(term), term)
	}
}

func TestUserRepository_SearchTermIsLiteral(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE login ILIKE \$1 ESCAPE`).
		WithArgs(`%b\_b%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT .+ FROM users WHERE login ILIKE`).
		WithArgs(`%b\_b%`, 10, 0).
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	q := domain.QueryParams{PageNumber: 1, PageSize: 10, SortBy: "createdAt", SortDirection: domain.SortDesc, SearchLoginTerm: "b_b"}
	users, total, err := repo.List(context.Background(), q)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderBy(t *testing.T) {
	cols := map[string]string{"createdAt": "created_at", "name": "name"}

	assert.Equal(t, " ORDER BY name ASC, id ASC",
		orderBy(domain.QueryParams{SortBy: "name", SortDirection: domain.SortAsc}, cols))
	assert.Equal(t, " ORDER BY created_at DESC, id DESC",
		orderBy(domain.QueryParams{SortBy: "name; DROP TABLE users", SortDirection: "sideways"}, cols))
}

func TestMigrate(t *testing.T) {
	db, _ := newMockDB(t)

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(ctx context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}
	require.NoError(t, Migrate(context.Background(), db))
	assert.Equal(t, ".", gotDir)

	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	err := Migrate(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run migrations")
}

package postgres

import (
	"context"

	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const commentColumns = `id, content, user_id, user_login, post_id, created_at`

var commentSortColumns = map[string]string{
	"createdAt": "created_at",
	"content":   "content",
}

type commentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sqlx.DB) repository.CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (` + commentColumns + `)
		VALUES (:id, :content, :user_id, :user_login, :post_id, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, comment); err != nil {
		return wrapError("create comment", err)
	}

	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.GetContext(ctx, &comment, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id); err != nil {
		return nil, wrapError("get comment by id", err)
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, id uuid.UUID, content string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE comments SET content = $1 WHERE id = $2`, content, id)
	if err != nil {
		return wrapError("update comment", err)
	}
	return checkAffected("update comment", result)
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return wrapError("delete comment", err)
	}
	return checkAffected("delete comment", result)
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uuid.UUID, q domain.QueryParams) ([]*domain.Comment, int, error) {
	var where whereBuilder
	where.add("post_id = $%d", postID)
	filter := where.clause(" AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM comments`+filter, where.args...); err != nil {
		return nil, 0, wrapError("count comments", err)
	}

	query, args := where.page(`SELECT `+commentColumns+` FROM comments`+filter+orderBy(q, commentSortColumns), q)

	var comments []*domain.Comment
	if err := r.db.SelectContext(ctx, &comments, query, args...); err != nil {
		return nil, 0, wrapError("list comments", err)
	}

	return comments, total, nil
}

func (r *commentRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM comments`); err != nil {
		return wrapError("delete all comments", err)
	}
	return nil
}

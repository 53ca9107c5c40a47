package postgres

import (
	"context"

	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const postColumns = `id, title, short_description, content, blog_id, blog_name, created_at`

var postSortColumns = map[string]string{
	"createdAt":        "created_at",
	"title":            "title",
	"shortDescription": "short_description",
	"content":          "content",
	"blogId":           "blog_id",
	"blogName":         "blog_name",
}

type postRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sqlx.DB) repository.PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (` + postColumns + `)
		VALUES (:id, :title, :short_description, :content, :blog_id, :blog_name, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, post); err != nil {
		return wrapError("create post", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var post domain.Post
	if err := r.db.GetContext(ctx, &post, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id); err != nil {
		return nil, wrapError("get post by id", err)
	}
	return &post, nil
}

// Update rewrites the editable fields; the post may move to another blog
func (r *postRepository) Update(ctx context.Context, id uuid.UUID, in domain.PostInput, blog *domain.Blog) error {
	query := `
		UPDATE posts
		SET title = $1,
			short_description = $2,
			content = $3,
			blog_id = $4,
			blog_name = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		in.Title, in.ShortDescription, in.Content, blog.ID, blog.Name, id)
	if err != nil {
		return wrapError("update post", err)
	}

	return checkAffected("update post", result)
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return wrapError("delete post", err)
	}
	return checkAffected("delete post", result)
}

func (r *postRepository) List(ctx context.Context, blogID *uuid.UUID, q domain.QueryParams) ([]*domain.Post, int, error) {
	var where whereBuilder
	if blogID != nil {
		where.add("blog_id = $%d", *blogID)
	}
	filter := where.clause(" AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts`+filter, where.args...); err != nil {
		return nil, 0, wrapError("count posts", err)
	}

	query, args := where.page(`SELECT `+postColumns+` FROM posts`+filter+orderBy(q, postSortColumns), q)

	var posts []*domain.Post
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, 0, wrapError("list posts", err)
	}

	return posts, total, nil
}

func (r *postRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return wrapError("delete all posts", err)
	}
	return nil
}

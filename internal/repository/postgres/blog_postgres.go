package postgres

import (
	"context"

	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const blogColumns = `id, name, description, website_url, is_membership, created_at`

var blogSortColumns = map[string]string{
	"createdAt":   "created_at",
	"name":        "name",
	"description": "description",
	"websiteUrl":  "website_url",
}

type blogRepository struct {
	db *sqlx.DB
}

// NewBlogRepository creates a new PostgreSQL blog repository
func NewBlogRepository(db *sqlx.DB) repository.BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	query := `
		INSERT INTO blogs (` + blogColumns + `)
		VALUES (:id, :name, :description, :website_url, :is_membership, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, blog); err != nil {
		return wrapError("create blog", err)
	}

	return nil
}

func (r *blogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	var blog domain.Blog
	if err := r.db.GetContext(ctx, &blog, `SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id); err != nil {
		return nil, wrapError("get blog by id", err)
	}
	return &blog, nil
}

// Update rewrites the editable fields and propagates a renamed blog to its posts
func (r *blogRepository) Update(ctx context.Context, id uuid.UUID, in domain.BlogInput) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapError("begin blog update", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE blogs SET name = $1, description = $2, website_url = $3 WHERE id = $4`,
		in.Name, in.Description, in.WebsiteURL, id)
	if err != nil {
		return wrapError("update blog", err)
	}
	if err := checkAffected("update blog", result); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE posts SET blog_name = $1 WHERE blog_id = $2`, in.Name, id); err != nil {
		return wrapError("update blog name on posts", err)
	}

	if err := tx.Commit(); err != nil {
		return wrapError("commit blog update", err)
	}

	return nil
}

func (r *blogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return wrapError("delete blog", err)
	}
	return checkAffected("delete blog", result)
}

// List retrieves blogs with pagination and an optional name search
func (r *blogRepository) List(ctx context.Context, q domain.QueryParams) ([]*domain.Blog, int, error) {
	var where whereBuilder
	if q.SearchNameTerm != "" {
		where.add(`name ILIKE $%d ESCAPE '\'`, containsPattern(q.SearchNameTerm))
	}
	filter := where.clause(" AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM blogs`+filter, where.args...); err != nil {
		return nil, 0, wrapError("count blogs", err)
	}

	query, args := where.page(`SELECT `+blogColumns+` FROM blogs`+filter+orderBy(q, blogSortColumns), q)

	var blogs []*domain.Blog
	if err := r.db.SelectContext(ctx, &blogs, query, args...); err != nil {
		return nil, 0, wrapError("list blogs", err)
	}

	return blogs, total, nil
}

func (r *blogRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM blogs`); err != nil {
		return wrapError("delete all blogs", err)
	}
	return nil
}

package repository

import (
	"context"

	"github.com/andressep95/blog-service/internal/domain"
	"github.com/google/uuid"
)

type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error)
	Update(ctx context.Context, id uuid.UUID, in domain.BlogInput) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q domain.QueryParams) ([]*domain.Blog, int, error)
	DeleteAll(ctx context.Context) error
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	Update(ctx context.Context, id uuid.UUID, in domain.PostInput, blog *domain.Blog) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns posts of blogID, or of every blog when blogID is nil
	List(ctx context.Context, blogID *uuid.UUID, q domain.QueryParams) ([]*domain.Post, int, error)
	DeleteAll(ctx context.Context) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	Update(ctx context.Context, id uuid.UUID, content string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPost(ctx context.Context, postID uuid.UUID, q domain.QueryParams) ([]*domain.Comment, int, error)
	DeleteAll(ctx context.Context) error
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/internal/repository"
	"github.com/google/uuid"
)

type PostService struct {
	postRepo repository.PostRepository
	blogRepo repository.BlogRepository
	now      func() time.Time
}

func NewPostService(postRepo repository.PostRepository, blogRepo repository.BlogRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		blogRepo: blogRepo,
		now:      time.Now,
	}
}

// Create stores a post under the blog named in the request.
// An unknown blog is reported against the blogId field.
func (s *PostService) Create(ctx context.Context, in domain.CreatePostInput) (*domain.Post, error) {
	blog, err := s.resolveBlog(ctx, in.BlogID)
	if err != nil {
		return nil, err
	}

	post := domain.NewPost(in.PostInput, blog, s.now().UTC())
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) Update(ctx context.Context, id uuid.UUID, in domain.CreatePostInput) error {
	blog, err := s.resolveBlog(ctx, in.BlogID)
	if err != nil {
		return err
	}
	return s.postRepo.Update(ctx, id, in.PostInput, blog)
}

func (s *PostService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.postRepo.Delete(ctx, id)
}

func (s *PostService) List(ctx context.Context, q domain.QueryParams) (*domain.Page[*domain.Post], error) {
	posts, total, err := s.postRepo.List(ctx, nil, q)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(posts, total, q), nil
}

func (s *PostService) resolveBlog(ctx context.Context, rawID string) (*domain.Blog, error) {
	notFound := domain.NewFieldError(domain.ErrValidation, "blog not found", "blogId")

	blogID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, notFound
	}

	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to load blog: %w", err)
	}
	return blog, nil
}

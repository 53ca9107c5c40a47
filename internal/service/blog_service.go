package service

import (
	"context"
	"time"

	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/internal/repository"
	"github.com/google/uuid"
)

type BlogService struct {
	blogRepo repository.BlogRepository
	postRepo repository.PostRepository
	now      func() time.Time
}

func NewBlogService(blogRepo repository.BlogRepository, postRepo repository.PostRepository) *BlogService {
	return &BlogService{
		blogRepo: blogRepo,
		postRepo: postRepo,
		now:      time.Now,
	}
}

func (s *BlogService) Create(ctx context.Context, in domain.BlogInput) (*domain.Blog, error) {
	blog := domain.NewBlog(in, s.now().UTC())
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	return s.blogRepo.GetByID(ctx, id)
}

func (s *BlogService) Update(ctx context.Context, id uuid.UUID, in domain.BlogInput) error {
	return s.blogRepo.Update(ctx, id, in)
}

func (s *BlogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.blogRepo.Delete(ctx, id)
}

func (s *BlogService) List(ctx context.Context, q domain.QueryParams) (*domain.Page[*domain.Blog], error) {
	blogs, total, err := s.blogRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(blogs, total, q), nil
}

// CreatePost adds a post to an existing blog
func (s *BlogService) CreatePost(ctx context.Context, blogID uuid.UUID, in domain.PostInput) (*domain.Post, error) {
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}

	post := domain.NewPost(in, blog, s.now().UTC())
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts returns the posts of an existing blog
func (s *BlogService) ListPosts(ctx context.Context, blogID uuid.UUID, q domain.QueryParams) (*domain.Page[*domain.Post], error) {
	if _, err := s.blogRepo.GetByID(ctx, blogID); err != nil {
		return nil, err
	}

	posts, total, err := s.postRepo.List(ctx, &blogID, q)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(posts, total, q), nil
}

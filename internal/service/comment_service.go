package service

import (
	"context"
	"fmt"
	"time"

	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/internal/repository"
	"github.com/google/uuid"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	now         func() time.Time
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		now:         time.Now,
	}
}

// Create adds a comment by author to an existing post
func (s *CommentService) Create(ctx context.Context, postID uuid.UUID, author *domain.User, content string) (*domain.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := domain.NewComment(content, postID, author, s.now().UTC())
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// Update changes the content of a comment written by userID
func (s *CommentService) Update(ctx context.Context, id, userID uuid.UUID, content string) error {
	if err := s.checkOwner(ctx, id, userID); err != nil {
		return err
	}
	return s.commentRepo.Update(ctx, id, content)
}

// Delete removes a comment written by userID
func (s *CommentService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.checkOwner(ctx, id, userID); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, id)
}

func (s *CommentService) ListByPost(ctx context.Context, postID uuid.UUID, q domain.QueryParams) (*domain.Page[*domain.Comment], error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.ListByPost(ctx, postID, q)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(comments, total, q), nil
}

func (s *CommentService) checkOwner(ctx context.Context, id, userID uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !comment.IsOwnedBy(userID) {
		return fmt.Errorf("comment %s: %w", id, domain.ErrForbidden)
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/andressep95/blog-service/internal/repository"
)

// TestingService wipes every collection for end-to-end test runs
type TestingService struct {
	commentRepo    repository.CommentRepository
	postRepo       repository.PostRepository
	blogRepo       repository.BlogRepository
	sessionRepo    repository.DeviceSessionRepository
	userRepo       repository.UserRepository
	tokenBlacklist RefreshTokenBlacklist
}

func NewTestingService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	blogRepo repository.BlogRepository,
	sessionRepo repository.DeviceSessionRepository,
	userRepo repository.UserRepository,
	tokenBlacklist RefreshTokenBlacklist,
) *TestingService {
	return &TestingService{
		commentRepo:    commentRepo,
		postRepo:       postRepo,
		blogRepo:       blogRepo,
		sessionRepo:    sessionRepo,
		userRepo:       userRepo,
		tokenBlacklist: tokenBlacklist,
	}
}

// DeleteAllData removes children before parents
func (s *TestingService) DeleteAllData(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"comments", s.commentRepo.DeleteAll},
		{"posts", s.postRepo.DeleteAll},
		{"blogs", s.blogRepo.DeleteAll},
		{"device sessions", s.sessionRepo.DeleteAll},
		{"users", s.userRepo.DeleteAll},
		{"token blacklist", s.tokenBlacklist.Clear},
	}

	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("failed to delete %s: %w", step.name, err)
		}
	}

	slog.WarnContext(ctx, "all data deleted")
	return nil
}

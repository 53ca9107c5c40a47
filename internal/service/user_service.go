package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/internal/repository"
	"github.com/andressep95/blog-service/pkg/hash"
	"github.com/google/uuid"
)

type UserService struct {
	userRepo repository.UserRepository
	hasher   *hash.Hasher
	now      func() time.Time
}

type CreateUserRequest struct {
	Login    string `json:"login" validate:"required,min=3,max=10,login"`
	Password string `json:"password" validate:"required,min=6,max=20"`
	Email    string `json:"email" validate:"required,email"`
}

func NewUserService(userRepo repository.UserRepository, hasher *hash.Hasher) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
		now:      time.Now,
	}
}

// CreateUser hashes the password with a fresh salt and stores an unconfirmed user
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	passwordHash, err := s.hasher.Hash(req.Password, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.NewUser(req.Login, req.Email, salt, passwordHash, s.now().UTC())
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user created", "user_id", user.ID, "login", user.Login)
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.userRepo.Delete(ctx, id)
}

// List returns a page of users matching the login/email search terms
func (s *UserService) List(ctx context.Context, q domain.QueryParams) (*domain.Page[domain.UserView], error) {
	users, total, err := s.userRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	views := make([]domain.UserView, len(users))
	for i, u := range users {
		views[i] = u.View()
	}

	return domain.NewPage(views, total, q), nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/class-union/union-server/internal/models"
	"github.com/class-union/union-server/internal/repositories"
)

// ===== REQUEST/RESPONSE DTOs =====

// ProfileClaims is the identity extracted from a verified token. EnsureProfile
// turns it into a stored profile exactly once per user.
type ProfileClaims struct {
	ID          string
	Email       string
	DisplayName string
	AvatarURL   *string
}

type UserListResponse struct {
	Users []*models.User `json:"users"`
	Total int64          `json:"total"`
}

// ===== SERVICE INTERFACE =====

type UserService interface {
	// EnsureProfile creates the profile on first sign-in with the default
	// role and returns the stored record on every call. Role changes made
	// out of band are never overwritten.
	EnsureProfile(ctx context.Context, claims ProfileClaims) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error)
}

// ===== SERVICE IMPLEMENTATION =====

type userService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewUserService(repo repositories.Repository, logger *slog.Logger) UserService {
	return &userService{
		repo:   repo,
		logger: logger,
	}
}

func (s *userService) EnsureProfile(ctx context.Context, claims ProfileClaims) (*models.User, error) {
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrUnauthorized)
	}

	user := &models.User{
		ID:          claims.ID,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
		Role:        models.DefaultRole,
		AvatarURL:   claims.AvatarURL,
	}

	stored, err := s.repo.User().EnsureProfile(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure profile: %w", err)
	}
	return stored, nil
}

func (s *userService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error) {
	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return &UserListResponse{Users: users, Total: total}, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/class-union/union-server/internal/models"
	"github.com/class-union/union-server/internal/repositories"
	"github.com/class-union/union-server/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

type CreatePostRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"required,max=20000"`
	ImageURL string `json:"image_url" validate:"omitempty,max=500"`
	FileID   string `json:"file_id" validate:"omitempty,max=64"`
}

// ===== SERVICE INTERFACE =====

type PostService interface {
	List(ctx context.Context, filters repositories.ContentFilters) ([]*models.BlogPost, error)
	Get(ctx context.Context, id string) (*models.BlogPost, error)
	Create(ctx context.Context, authorID string, req CreatePostRequest) (*models.BlogPost, error)
	// Delete removes the record, then its blob. The two steps are sequential,
	// not transactional; a blob failure is logged and swallowed.
	Delete(ctx context.Context, id string) error
}

// ===== SERVICE IMPLEMENTATION =====

type postService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewPostService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) PostService {
	return &postService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *postService) List(ctx context.Context, filters repositories.ContentFilters) ([]*models.BlogPost, error) {
	posts, err := s.repo.Post().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (s *postService) Get(ctx context.Context, id string) (*models.BlogPost, error) {
	post, err := s.repo.Post().GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return post, nil
}

func (s *postService) Create(ctx context.Context, authorID string, req CreatePostRequest) (*models.BlogPost, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	post := &models.BlogPost{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: authorID,
		ImageURL: req.ImageURL,
		FileID:   req.FileID,
	}

	if err := s.repo.Post().Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("Blog post created", "post_id", post.ID.Hex(), "author_id", authorID)
	return post, nil
}

func (s *postService) Delete(ctx context.Context, id string) error {
	post, err := s.repo.Post().GetByID(ctx, id)
	if err != nil {
		return translateRepoError(err)
	}

	if err := s.repo.Post().Delete(ctx, id); err != nil {
		return translateRepoError(err)
	}

	deleteOrphanBlob(ctx, s.repo.File(), s.logger, post.FileRef(), "post", id)
	return nil
}

// ===== SHARED HELPERS =====

// translateRepoError maps repository sentinels onto service sentinels.
func translateRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repositories.ErrInvalidID):
		return ErrInvalidID
	default:
		return err
	}
}

// deleteOrphanBlob performs the second step of a content deletion. Failure
// leaves an orphaned blob; it is logged only, never retried or rolled back.
func deleteOrphanBlob(ctx context.Context, files repositories.FileRepository, logger *slog.Logger, fileID, kind, recordID string) {
	if fileID == "" {
		return
	}
	if err := files.Delete(ctx, fileID); err != nil {
		logger.Warn("Failed to delete blob for removed record",
			"kind", kind, "record_id", recordID, "file_id", fileID, "error", err)
	}
}

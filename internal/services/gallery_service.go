package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/class-union/union-server/internal/models"
	"github.com/class-union/union-server/internal/repositories"
	"github.com/class-union/union-server/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

type AddGalleryImageRequest struct {
	FileID  string `json:"file_id" validate:"required,max=64"`
	URL     string `json:"url" validate:"required,max=500"`
	Caption string `json:"caption" validate:"omitempty,max=500"`
}

// ===== SERVICE INTERFACE =====

type GalleryService interface {
	List(ctx context.Context, filters repositories.ContentFilters) ([]*models.GalleryImage, error)
	Add(ctx context.Context, uploaderID string, req AddGalleryImageRequest) (*models.GalleryImage, error)
	Delete(ctx context.Context, id string) error
}

// ===== SERVICE IMPLEMENTATION =====

type galleryService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewGalleryService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) GalleryService {
	return &galleryService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *galleryService) List(ctx context.Context, filters repositories.ContentFilters) ([]*models.GalleryImage, error) {
	images, err := s.repo.Gallery().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery images: %w", err)
	}
	return images, nil
}

func (s *galleryService) Add(ctx context.Context, uploaderID string, req AddGalleryImageRequest) (*models.GalleryImage, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	image := &models.GalleryImage{
		URL:        req.URL,
		FileID:     req.FileID,
		Caption:    req.Caption,
		UploadedBy: uploaderID,
	}

	if err := s.repo.Gallery().Create(ctx, image); err != nil {
		return nil, fmt.Errorf("failed to add gallery image: %w", err)
	}

	s.logger.Info("Gallery image added", "image_id", image.ID.Hex(), "uploaded_by", uploaderID)
	return image, nil
}

func (s *galleryService) Delete(ctx context.Context, id string) error {
	image, err := s.repo.Gallery().GetByID(ctx, id)
	if err != nil {
		return translateRepoError(err)
	}

	if err := s.repo.Gallery().Delete(ctx, id); err != nil {
		return translateRepoError(err)
	}

	deleteOrphanBlob(ctx, s.repo.File(), s.logger, image.FileRef(), "gallery", id)
	return nil
}

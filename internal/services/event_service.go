package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/class-union/union-server/internal/models"
	"github.com/class-union/union-server/internal/repositories"
	"github.com/class-union/union-server/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"required,max=5000"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location" validate:"omitempty,max=300"`
	ImageURL    string    `json:"image_url" validate:"omitempty,max=500"`
	FileID      string    `json:"file_id" validate:"omitempty,max=64"`
}

// ===== SERVICE INTERFACE =====

type EventService interface {
	List(ctx context.Context, filters repositories.ContentFilters) ([]*models.Event, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, creatorID string, req CreateEventRequest) (*models.Event, error)
	Delete(ctx context.Context, id string) error
}

// ===== SERVICE IMPLEMENTATION =====

type eventService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewEventService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) EventService {
	return &eventService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *eventService) List(ctx context.Context, filters repositories.ContentFilters) ([]*models.Event, error) {
	events, err := s.repo.Event().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.Event().GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return event, nil
}

func (s *eventService) Create(ctx context.Context, creatorID string, req CreateEventRequest) (*models.Event, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		CreatedBy:   creatorID,
		ImageURL:    req.ImageURL,
		FileID:      req.FileID,
	}

	if err := s.repo.Event().Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.logger.Info("Event created", "event_id", event.ID.Hex(), "created_by", creatorID)
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	event, err := s.repo.Event().GetByID(ctx, id)
	if err != nil {
		return translateRepoError(err)
	}

	if err := s.repo.Event().Delete(ctx, id); err != nil {
		return translateRepoError(err)
	}

	deleteOrphanBlob(ctx, s.repo.File(), s.logger, event.FileRef(), "event", id)
	return nil
}

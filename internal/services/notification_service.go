package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/class-union/union-server/internal/events"
	"github.com/class-union/union-server/internal/models"
	"github.com/class-union/union-server/internal/repositories"
	"github.com/class-union/union-server/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

type CreateNotificationRequest struct {
	UserID  string `json:"user_id" validate:"required,max=128"`
	Title   string `json:"title" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=2000"`
	Type    string `json:"type" validate:"omitempty,oneof=info warning success announcement"`
}

type BroadcastRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=2000"`
	Type    string `json:"type" validate:"omitempty,oneof=info warning success announcement"`
}

type BroadcastResponse struct {
	Recipients int `json:"recipients"`
}

type MarkAllReadResponse struct {
	Marked int `json:"marked"`
}

// ===== SERVICE INTERFACE =====

type NotificationService interface {
	Notify(ctx context.Context, req CreateNotificationRequest) (*models.Notification, error)
	// Broadcast creates one unread record per registered user in a single
	// multi-document insert, then publishes one event per record.
	Broadcast(ctx context.Context, req BroadcastRequest) (*BroadcastResponse, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Notification, error)
	// MarkAllRead flips every currently-unread record for the user, one
	// update per record. A record failing mid-way leaves earlier ones read.
	MarkAllRead(ctx context.Context, userID string) (*MarkAllReadResponse, error)
}

// ===== SERVICE IMPLEMENTATION =====

type notificationService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewNotificationService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) NotificationService {
	return &notificationService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *notificationService) Notify(ctx context.Context, req CreateNotificationRequest) (*models.Notification, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	notification := &models.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    models.NotificationType(req.Type),
	}

	if err := s.repo.Notification().Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.publish(ctx, notification)
	s.logger.Info("Notification created", "notification_id", notification.ID.Hex(), "user_id", req.UserID)
	return notification, nil
}

func (s *notificationService) Broadcast(ctx context.Context, req BroadcastRequest) (*BroadcastResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	userIDs, err := s.repo.User().ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list broadcast recipients: %w", err)
	}
	if len(userIDs) == 0 {
		return &BroadcastResponse{Recipients: 0}, nil
	}

	notifications := make([]*models.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		notifications = append(notifications, &models.Notification{
			UserID:  id,
			Title:   req.Title,
			Message: req.Message,
			Type:    models.NotificationType(req.Type),
		})
	}

	if err := s.repo.Notification().CreateMany(ctx, notifications); err != nil {
		return nil, fmt.Errorf("failed to broadcast notifications: %w", err)
	}

	for _, n := range notifications {
		s.publish(ctx, n)
	}

	s.logger.Info("Notification broadcast", "recipients", len(notifications), "title", req.Title)
	return &BroadcastResponse{Recipients: len(notifications)}, nil
}

func (s *notificationService) ListForUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	notifications, err := s.repo.Notification().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (*MarkAllReadResponse, error) {
	unread, err := s.repo.Notification().ListUnreadByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unread notifications: %w", err)
	}

	marked := 0
	for _, n := range unread {
		if err := s.repo.Notification().MarkRead(ctx, n.ID.Hex()); err != nil {
			return nil, fmt.Errorf("failed to mark notification %s read: %w", n.ID.Hex(), err)
		}
		marked++
	}

	return &MarkAllReadResponse{Marked: marked}, nil
}

// publish pushes the record onto the event bus. Delivery is best effort; a bus
// failure never fails the write that already happened.
func (s *notificationService) publish(ctx context.Context, n *models.Notification) {
	if err := s.publisher.Publish(ctx, events.TopicNotificationCreated, n); err != nil {
		s.logger.Warn("Failed to publish notification event",
			"notification_id", n.ID.Hex(), "user_id", n.UserID, "error", err)
	}
}

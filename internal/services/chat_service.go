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

type SendMessageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
	// Timestamp is set by the client; zero means the server stamps it.
	Timestamp int64 `json:"timestamp" validate:"omitempty,gte=0"`
}

// ===== SERVICE INTERFACE =====

type ChatService interface {
	History(ctx context.Context, roomID string, limit int64) ([]*models.Message, error)
	Send(ctx context.Context, roomID string, sender *models.User, req SendMessageRequest) (*models.Message, error)
	Subscribe(ctx context.Context, roomID string) (<-chan *models.Message, func(), error)
	// DefaultRoom is the room clients land in when they name none.
	DefaultRoom() string
}

// ===== SERVICE IMPLEMENTATION =====

type chatService struct {
	repo        repositories.Repository
	logger      *slog.Logger
	validator   *validator.Validator
	defaultRoom string
}

func NewChatService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, defaultRoom string) ChatService {
	if defaultRoom == "" {
		defaultRoom = "main"
	}
	return &chatService{
		repo:        repo,
		logger:      logger,
		validator:   validator,
		defaultRoom: defaultRoom,
	}
}

func (s *chatService) DefaultRoom() string { return s.defaultRoom }

func (s *chatService) roomOrDefault(roomID string) string {
	if roomID == "" {
		return s.defaultRoom
	}
	return roomID
}

func (s *chatService) History(ctx context.Context, roomID string, limit int64) ([]*models.Message, error) {
	messages, err := s.repo.Chat().History(ctx, s.roomOrDefault(roomID), limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return messages, nil
}

func (s *chatService) Send(ctx context.Context, roomID string, sender *models.User, req SendMessageRequest) (*models.Message, error) {
	if sender == nil {
		return nil, ErrUnauthorized
	}
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	msg := &models.Message{
		RoomID:      s.roomOrDefault(roomID),
		UserID:      sender.ID,
		Text:        req.Text,
		DisplayName: sender.DisplayName,
		Timestamp:   req.Timestamp,
	}

	if err := s.repo.Chat().Append(ctx, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.logger.Debug("Chat message sent", "room_id", msg.RoomID, "user_id", sender.ID, "message_id", msg.ID)
	return msg, nil
}

func (s *chatService) Subscribe(ctx context.Context, roomID string) (<-chan *models.Message, func(), error) {
	out, cancel, err := s.repo.Chat().Subscribe(ctx, s.roomOrDefault(roomID))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return out, cancel, nil
}

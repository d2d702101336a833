package services

import (
	"context"
	"errors"
)

// ===== SHARED SERVICE ERRORS =====

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrInvalidID        = errors.New("invalid identifier")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrUnavailable      = errors.New("service unavailable")
)

// ===== SERVICE MANAGER =====

// ServiceManager wires every service with its dependencies and owns their
// lifecycle.
type ServiceManager interface {
	User() UserService
	Post() PostService
	Event() EventService
	Gallery() GalleryService
	Chat() ChatService
	Notification() NotificationService
	Dashboard() DashboardService
	File() FileService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/class-union/union-server/internal/events"
	"github.com/class-union/union-server/internal/models"
	"github.com/class-union/union-server/internal/services"
	"github.com/class-union/union-server/internal/utils"
)

type NotificationHandler struct {
	BaseHandler
	notificationService services.NotificationService
	bus                 *events.Bus
}

func NewNotificationHandler(notificationService services.NotificationService, bus *events.Bus, logger utils.Logger) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         NewBaseHandler(logger),
		notificationService: notificationService,
		bus:                 bus,
	}
}

// ListNotifications returns the caller's notifications, newest first
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Success 200 {array} models.Notification
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	user, ok := GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	notifications, err := h.notificationService.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "count": len(notifications)})
}

// MarkAllRead marks every unread notification for the caller as read
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Success 200 {object} services.MarkAllReadResponse
// @Router /notifications/read [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	user, ok := GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	result, err := h.notificationService.MarkAllRead(c.Request.Context(), user.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateNotification creates a notification for one user (admin only)
// @Summary Create notification
// @Tags notifications
// @Accept json
// @Produce json
// @Param notification body services.CreateNotificationRequest true "Notification"
// @Success 201 {object} models.Notification
// @Failure 400 {object} ErrorResponse
// @Router /notifications [post]
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req services.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	notification, err := h.notificationService.Notify(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, notification)
}

// Broadcast creates one notification per registered user (admin only)
// @Summary Broadcast notification
// @Tags notifications
// @Accept json
// @Produce json
// @Param notification body services.BroadcastRequest true "Broadcast"
// @Success 200 {object} services.BroadcastResponse
// @Failure 400 {object} ErrorResponse
// @Router /notifications/broadcast [post]
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var req services.BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	result, err := h.notificationService.Broadcast(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// StreamNotifications streams the caller's notifications over SSE. Events for
// other users are consumed and dropped.
// @Summary Live notification stream (SSE)
// @Tags notifications
// @Produce text/event-stream
// @Router /notifications/stream [get]
func (h *NotificationHandler) StreamNotifications(c *gin.Context) {
	user, ok := GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	ctx := c.Request.Context()

	messages, err := h.bus.Subscribe(ctx, events.TopicNotificationCreated)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Notification stream opened", "user_id", user.ID)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case msg, ok := <-messages:
			if !ok {
				return false
			}

			var notification models.Notification
			if err := json.Unmarshal(msg.Payload, &notification); err != nil {
				msg.Ack()
				return true
			}
			msg.Ack()

			if notification.UserID != user.ID {
				return true
			}

			c.SSEvent("notification", notification)
			return true
		}
	})
}

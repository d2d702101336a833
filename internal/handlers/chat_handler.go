package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/class-union/union-server/internal/services"
	"github.com/class-union/union-server/internal/utils"
)

type ChatHandler struct {
	BaseHandler
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService, logger utils.Logger) *ChatHandler {
	return &ChatHandler{
		BaseHandler: NewBaseHandler(logger),
		chatService: chatService,
	}
}

const defaultHistoryLimit = 100

// GetMessages returns room history ordered by timestamp
// @Summary Chat history
// @Tags chat
// @Produce json
// @Param room path string true "Room ID"
// @Param limit query int false "Max messages, newest tail"
// @Success 200 {array} models.Message
// @Router /chat/rooms/{room}/messages [get]
func (h *ChatHandler) GetMessages(c *gin.Context) {
	limit := int64(defaultHistoryLimit)
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	messages, err := h.chatService.History(c.Request.Context(), c.Param("room"), limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages, "count": len(messages)})
}

// SendMessage appends a message to the room and fans it out to subscribers
// @Summary Send chat message
// @Tags chat
// @Accept json
// @Produce json
// @Param room path string true "Room ID"
// @Param message body services.SendMessageRequest true "Message"
// @Success 201 {object} models.Message
// @Failure 400 {object} ErrorResponse
// @Router /chat/rooms/{room}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, ok := GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	msg, err := h.chatService.Send(c.Request.Context(), c.Param("room"), user, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// StreamMessages streams live room messages over SSE until the client
// disconnects.
// @Summary Live chat stream (SSE)
// @Tags chat
// @Produce text/event-stream
// @Param room path string true "Room ID"
// @Router /chat/rooms/{room}/stream [get]
func (h *ChatHandler) StreamMessages(c *gin.Context) {
	ctx := c.Request.Context()

	messages, cancel, err := h.chatService.Subscribe(ctx, c.Param("room"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer cancel()

	h.LogRequest(c, "Chat stream opened", "room_id", c.Param("room"))

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
			c.SSEvent("message", msg)
			return true
		}
	})
}

package handler

import (
	"net/http"

	"fitpulse/internal/delivery/http/middleware"
	"fitpulse/internal/delivery/http/response"
	"fitpulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MessageHandler holds dependencies for conversation handlers.
type MessageHandler struct {
	uc usecase.MessageUsecase
}

// NewMessageHandler is the constructor for MessageHandler, injected by Fx.
func NewMessageHandler(uc usecase.MessageUsecase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

// ListConversations returns one summary per counterpart, newest first.
func (h *MessageHandler) ListConversations(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	summaries, err := h.uc.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summaries, "Conversations retrieved successfully")
}

// GetMessages returns the history with one counterpart, oldest first, marking
// their messages as read in the process.
func (h *MessageHandler) GetMessages(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	otherUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user ID in path")
	}

	messages, err := h.uc.GetMessages(c.Request().Context(), userID, otherUserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, messages, "Messages retrieved successfully")
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiverId" validate:"required,uuid"`
	Content    string `json:"content" validate:"required,max=2000"`
}

// SendMessage stores a new direct message addressed to another user.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid message input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid receiver ID")
	}

	message, err := h.uc.SendMessage(c.Request().Context(), &usecase.SendMessageInput{
		SenderID:   userID,
		ReceiverID: receiverID,
		Content:    req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, message, "Message sent successfully")
}

// MarkAsRead marks every message from the counterpart to the caller as read.
func (h *MessageHandler) MarkAsRead(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	otherUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user ID in path")
	}

	if err := h.uc.MarkAsRead(c.Request().Context(), userID, otherUserID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"status": "read"}, "Messages marked as read")
}

package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quickdesk/core/internal/application/services"
	"github.com/quickdesk/core/internal/domain/entities"
	"github.com/quickdesk/core/internal/infrastructure/logger"
	"github.com/quickdesk/core/internal/ports"
)

// ChatHandler handles conversation and inbox requests
type ChatHandler struct {
	chatService *services.ChatService
	logger      *logger.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *services.ChatService, logger *logger.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// ListMessages serves one poll cycle for a conversation
func (h *ChatHandler) ListMessages(c echo.Context) error {
	chatID := c.Param("id")

	msgs, err := h.chatService.Messages(c.Request().Context(), chatID)
	if err != nil {
		if errors.Is(err, entities.ErrThreadNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Chat not found")
		}
		h.logger.Errorw("Failed to list messages", "error", err, "chat_id", chatID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch messages")
	}

	if msgs == nil {
		msgs = []entities.Message{}
	}

	return c.JSON(http.StatusOK, ports.MessageListResponse{Messages: msgs})
}

// SendMessage confirms a send and returns the authoritative record
func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req ports.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	req.ChatID = c.Param("id")

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.chatService.Send(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrThreadNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Chat not found")
		}
		h.logger.Errorw("Failed to send message", "error", err, "chat_id", req.ChatID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send message")
	}

	return c.JSON(http.StatusCreated, msg)
}

// MarkRead advances the chat's read watermark
func (h *ChatHandler) MarkRead(c echo.Context) error {
	chatID := c.Param("id")

	if err := h.chatService.MarkRead(c.Request().Context(), chatID); err != nil {
		if errors.Is(err, entities.ErrChatNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Chat not found")
		}
		h.logger.Errorw("Failed to mark chat read", "error", err, "chat_id", chatID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark chat read")
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Chat marked as read"})
}

// ListInbox returns the conversation summaries
func (h *ChatHandler) ListInbox(c echo.Context) error {
	threads, err := h.chatService.Inbox(c.Request().Context())
	if err != nil {
		h.logger.Errorw("Failed to list inbox", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch inbox")
	}

	if threads == nil {
		threads = []entities.Thread{}
	}

	return c.JSON(http.StatusOK, ports.InboxResponse{Inbox: threads})
}

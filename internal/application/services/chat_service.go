package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quickdesk/core/internal/domain/entities"
	"github.com/quickdesk/core/internal/infrastructure/logger"
	"github.com/quickdesk/core/internal/ports"
)

// ChatService is the collaborator-side conversation surface behind the
// REST API: it confirms sends, serves poll reads, and keeps the inbox
// summaries fresh.
type ChatService struct {
	msgRepo    ports.MessageRepository
	threadRepo ports.ThreadRepository
	logger     *logger.Logger
}

// NewChatService creates a new chat service
func NewChatService(msgRepo ports.MessageRepository, threadRepo ports.ThreadRepository, log *logger.Logger) *ChatService {
	return &ChatService{
		msgRepo:    msgRepo,
		threadRepo: threadRepo,
		logger:     log.WithComponent("chat_service"),
	}
}

// Messages returns the chat's full message list for one poll cycle.
func (s *ChatService) Messages(ctx context.Context, chatID string) ([]entities.Message, error) {
	if _, err := s.threadRepo.GetByID(ctx, chatID); err != nil {
		return nil, err
	}

	return s.msgRepo.ListByChat(ctx, chatID)
}

// Send assigns the server id and timestamps, persists the message, and
// returns the confirmed record the client appends.
func (s *ChatService) Send(ctx context.Context, req ports.SendMessageRequest) (*entities.Message, error) {
	if _, err := s.threadRepo.GetByID(ctx, req.ChatID); err != nil {
		return nil, err
	}

	now := time.Now()
	msg := &entities.Message{
		ID:        uuid.NewString(),
		ChatID:    req.ChatID,
		Sender:    req.Sender,
		Text:      req.Text,
		SentAt:    now,
		Time:      now.Format("15:04"),
		Date:      now.Format("2006-01-02"),
		ReplyToID: req.ReplyToID,
	}

	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to persist message: %w", err)
	}

	if err := s.threadRepo.TouchPreview(ctx, req.ChatID, req.Text, req.Sender, msg.Date); err != nil {
		s.logger.Warnw("Failed to refresh thread preview", "chat_id", req.ChatID, "error", err)
	}

	s.logger.Infow("Message sent", "chat_id", req.ChatID, "message_id", msg.ID)
	return msg, nil
}

// Inbox returns the thread summaries for the inbox list.
func (s *ChatService) Inbox(ctx context.Context) ([]entities.Thread, error) {
	return s.threadRepo.List(ctx)
}

// MarkRead advances the chat's read watermark.
func (s *ChatService) MarkRead(ctx context.Context, chatID string) error {
	return s.msgRepo.MarkChatRead(ctx, chatID)
}
